package app

import (
	"net/http"
	"time"

	"hybridchat/internal/config"
)

// Options holds runtime wiring options for building the app.
type Options struct {
	Home     string       // state directory, e.g. $HOME/.hybridchat
	RelayURL string       // relay base URL, e.g. http://127.0.0.1:8080
	HTTP     *http.Client // optional; built from Timeout when nil
	Timeout  time.Duration
}

// OptionsFrom maps a loaded configuration onto wiring options.
func OptionsFrom(c *config.Config) Options {
	return Options{
		Home:     c.Home,
		RelayURL: c.RelayURL,
		Timeout:  c.HTTPTimeout,
	}
}
