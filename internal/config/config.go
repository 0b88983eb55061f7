// Package config loads client and relay settings with viper.
//
// Precedence, highest first: command-line flags bound with BindFlags,
// HYBRIDCHAT_* environment variables, config.yaml in the home directory,
// then built-in defaults. Domain parameters are not configurable.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HYBRIDCHAT_RELAY_URL.
const EnvPrefix = "HYBRIDCHAT"

// Config is the resolved configuration.
type Config struct {
	Home        string        `mapstructure:"home"`
	RelayURL    string        `mapstructure:"relay_url"`
	Username    string        `mapstructure:"username"`
	Passphrase  string        `mapstructure:"passphrase"`
	LogLevel    string        `mapstructure:"log_level"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	Server      Server        `mapstructure:"server"`
}

// Server holds relay server settings.
type Server struct {
	Addr    string `mapstructure:"addr"`
	LogFile string `mapstructure:"log_file"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("home", defaultHome())
	v.SetDefault("relay_url", "http://127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("server.addr", ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range []string{"username", "passphrase", "server.log_file"} {
		_ = v.BindEnv(k)
	}
	return v
}

// BindFlags binds flags to their config keys. A flag name maps to the key
// with '-' replaced by '_' (e.g. --relay-url to relay_url), unless keys
// names it explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Join(err, bindErr)
		}
	})
	return err
}

// Load reads config.yaml from the resolved home directory, if present, and
// returns the validated configuration.
func Load(v *viper.Viper) (*Config, error) {
	home := expandHome(v.GetString("home"))
	v.Set("home", home)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home is empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RelayURL != "" {
		u, err := url.Parse(c.RelayURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: relay_url %q is not an http(s) URL", c.RelayURL)
		}
	}
	return nil
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".hybridchat"
	}
	return filepath.Join(dir, ".hybridchat")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if dir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(dir, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
