package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hybridchat/internal/app"
	"hybridchat/internal/config"
	"hybridchat/internal/log"
)

var (
	cfg    *config.Config
	appCtx *app.Wire
)

// skipWire marks commands that need no stores or relay.
const skipWire = "skip-wire"

func Execute() error {
	v := config.New()

	root := &cobra.Command{
		Use:           "hybridchat",
		Short:         "ElGamal/DSA/AES encrypted chat CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags(), map[string]string{"relay": "relay_url"}); err != nil {
				return err
			}
			c, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg = c

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetGlobalLogger(log.New(log.WithLevel(level)))

			if cmd.Annotations[skipWire] != "" {
				return nil
			}
			appCtx, err = app.NewWire(app.OptionsFrom(cfg), log.G)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.String("home", "", "state dir (default ~/.hybridchat)")
	pf.StringP("passphrase", "p", "", "passphrase to protect keys")
	pf.String("relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Duration("http-timeout", 0, "relay request timeout")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		registerCmd(),
		startSessionCmd(),
		sendCmd(),
		recvCmd(),
		forgetCmd(),
		hashCmd(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func requirePassphrase() (string, error) {
	if cfg.Passphrase == "" {
		return "", errors.New("passphrase required (-p or HYBRIDCHAT_PASSPHRASE)")
	}
	return cfg.Passphrase, nil
}
