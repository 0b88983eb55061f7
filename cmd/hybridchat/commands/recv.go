package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// recv: fetch, verify and decrypt queued messages.
func recvCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Fetch and decrypt your queued messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase()
			if err != nil {
				return err
			}
			me, err := appCtx.Me()
			if err != nil {
				return err
			}

			msgs, err := appCtx.Messages.ReceiveMessages(cmd.Context(), pass, me, limit)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				ts := time.Unix(m.Timestamp, 0).Format(time.DateTime)
				fmt.Printf("%s [%s] %s\n", ts, m.From, string(m.Plaintext))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum envelopes to fetch (0 = all)")
	return cmd
}
