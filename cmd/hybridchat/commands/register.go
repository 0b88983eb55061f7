package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hybridchat/internal/domain"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Publish your public keys to the relay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase()
			if err != nil {
				return err
			}
			username := domain.Username(args[0])

			keys, err := appCtx.IDs.PublicKeys(pass, username)
			if err != nil {
				return err
			}
			if err := appCtx.Relay.RegisterKeys(cmd.Context(), keys); err != nil {
				return err
			}

			fp, err := appCtx.IDs.FingerprintIdentity(pass)
			if err != nil {
				return err
			}
			profile := domain.AccountProfile{
				ServerURL:     appCtx.RelayURL,
				Username:      username,
				Fingerprint:   fp,
				RegisteredUTC: time.Now().UTC().Unix(),
			}
			if err := appCtx.Accounts.SaveAccountProfile(profile); err != nil {
				return err
			}

			fmt.Printf("Registered %s with %s\n", username, appCtx.RelayURL)
			return nil
		},
	}
}
