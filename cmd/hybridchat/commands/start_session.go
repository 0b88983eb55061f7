package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hybridchat/internal/domain"
)

// startSessionCmd wraps a fresh AES session key for the peer's ElGamal key,
// signs it and posts it as a key_exchange envelope.
func startSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-session <peer>",
		Short: "Establish a session key with a peer",
		Args:  cobra.ExactArgs(1),
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

			fp, err := appCtx.Sessions.StartSession(cmd.Context(), pass, me, peer)
			if err != nil {
				return fmt.Errorf("starting session with %q: %w", peer, err)
			}

			fmt.Printf("Session key sent to %s. Peer fingerprint: %s\n", peer, fp)
			return nil
		},
	}
}
