package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hybridchat/internal/domain"
)

func forgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <peer>",
		Short: "Remove a peer's cached keys and session key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase()
			if err != nil {
				return err
			}
			removed, err := appCtx.Sessions.ForgetPeer(pass, domain.Username(args[0]))
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("%s was not known\n", args[0])
				return nil
			}
			fmt.Printf("Forgot %s\n", args[0])
			return nil
		},
	}
}
