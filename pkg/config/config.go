// Package config loads devstash settings from the config file, environment
// and flags, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/devstash/devstash/pkg/governance"
	"github.com/devstash/devstash/pkg/vault"
)

// Config is the fully resolved devstash configuration.
type Config struct {
	// Vault is the path to the vault file.
	Vault string `mapstructure:"vault"`
	// Editor opens entries for editing. Falls back to $EDITOR, then vi.
	Editor string `mapstructure:"editor"`
	// Timeout bounds each executor call during run. Zero = none.
	Timeout time.Duration `mapstructure:"timeout"`
	// AlwaysConfirm keeps the confirmation gate even when --yes is passed.
	AlwaysConfirm bool `mapstructure:"always_confirm"`
	// Governance is the optional command policy.
	Governance governance.Policy `mapstructure:"governance"`
}

// SetDefaults registers defaults on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("vault", "")
	v.SetDefault("editor", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("always_confirm", false)
}

// Init wires the config file search paths and env binding. An explicit
// cfgFile wins; otherwise .devstash.yaml is looked up in the working
// directory and the home directory.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".devstash")
	}

	v.SetEnvPrefix("DEVSTASH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		if cfgFile == "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load unmarshals the resolved settings.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ResolveEditor picks the editor command: config, then $EDITOR, then vi.
func (c *Config) ResolveEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "vi"
}

// ResolveVault picks the vault path: flag value, then config, then the
// default location under the working directory.
func ResolveVault(flagPath string, cfg *Config) string {
	if flagPath != "" {
		return flagPath
	}
	if cfg != nil && cfg.Vault != "" {
		return cfg.Vault
	}
	return vault.DefaultPath(".")
}
