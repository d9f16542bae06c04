// Package config resolves runtime settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the runtime settings.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BindingsFile string        `mapstructure:"bindings_file"`
	CancelKey    string        `mapstructure:"cancel_key"`
}

// Load resolves settings with the usual precedence: explicit flags, then
// PADBIND_* environment variables, then a padbind.yaml in the working
// directory, then defaults.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("padbind", pflag.ContinueOnError)
	fs.String("addr", ":8080", "HTTP listen address")
	fs.Duration("poll-interval", 500*time.Millisecond, "gamepad poll interval")
	fs.String("bindings-file", "padbind.json", "bindings storage file")
	fs.String("cancel-key", "Escape", "key that clears a binding during a remap")
	fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"addr":          "addr",
		"poll_interval": "poll-interval",
		"bindings_file": "bindings-file",
		"cancel_key":    "cancel-key",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("PADBIND")
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("padbind")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
