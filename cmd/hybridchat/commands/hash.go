package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hybridchat/internal/crypto/sha256"
)

// hash streams a file (or stdin for "-") through SHA-256.
func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hash <file>",
		Short:       "Print the SHA-256 digest of a file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipWire: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			h := sha256.New()
			if _, err := io.Copy(h, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", h.Digest(), args[0])
			return nil
		},
	}
}
