package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hybridchat/internal/domain"
)

// send <peer> <message>: encrypt and send a message to <peer>.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase()
			if err != nil {
				return err
			}
			me, err := appCtx.Me()
			if err != nil {
				return err
			}
			peer := domain.Username(args[0])

			if err := appCtx.Messages.SendMessage(cmd.Context(), pass, me, peer, []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
}
