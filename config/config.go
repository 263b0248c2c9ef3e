package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/wstore/transfer"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for wstore.
type Config struct {
	BaseURL string    `mapstructure:"base_url" validate:"required,url"`
	Auth    string    `mapstructure:"auth" validate:"omitempty,contains=:"`
	Include bool      `mapstructure:"include"`
	Output  string    `mapstructure:"output"`
	Env     string    `mapstructure:"env"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// TransferConfig converts the loaded settings into a client configuration.
func (c *Config) TransferConfig() (*transfer.Config, error) {
	creds, err := transfer.ParseCredentials(c.Auth)
	if err != nil {
		return nil, fmt.Errorf("parse auth: %w", err)
	}
	return &transfer.Config{
		BaseURL:     c.BaseURL,
		Credentials: creds,
		Options: transfer.Options{
			IncludeHeaders: c.Include,
			OutputPath:     c.Output,
		},
	}, nil
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"base-url":  "base_url",
	"log-level": "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", transfer.DefaultBaseURL)
	v.SetDefault("auth", "")
	v.SetDefault("include", false)
	v.SetDefault("output", "")
	v.SetDefault("env", "")
	v.SetDefault("log.level", "warn")
}

// applyProfile layers a profile over the defaults. Env vars and flags still
// take precedence over it.
func applyProfile(v *viper.Viper, p *Profile) {
	if p == nil {
		return
	}
	if p.BaseURL != "" {
		v.SetDefault("base_url", p.BaseURL)
	}
	if auth := p.Auth(); auth != "" {
		v.SetDefault("auth", auth)
	}
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > profile > defaults
//
// Parameters:
//   - profile: the selected profile (can be nil)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(profile *Profile, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Layer the profile
	applyProfile(v, profile)

	// 3. Bind environment variables
	v.SetEnvPrefix("WSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
