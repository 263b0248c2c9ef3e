package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/wstore/config"
	"github.com/sagarc03/wstore/transfer"
)

// newFlags returns a flag set shaped like the wstore persistent flags.
func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("wstore", pflag.ContinueOnError)
	flags.StringP("base-url", "b", "", "")
	flags.StringP("auth", "a", "", "")
	flags.BoolP("include", "i", false, "")
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, transfer.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.Auth)
	assert.False(t, cfg.Include)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Profile(t *testing.T) {
	profile := &config.Profile{
		Name:     "staging",
		BaseURL:  "http://staging.example.com/files/",
		Username: "alice",
		Password: "secret",
	}

	cfg, err := config.Load(profile, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://staging.example.com/files/", cfg.BaseURL)
	assert.Equal(t, "alice:secret", cfg.Auth)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("WSTORE_BASE_URL", "http://env.example.com/")
	t.Setenv("WSTORE_AUTH", "bob:hunter2")
	t.Setenv("WSTORE_INCLUDE", "true")
	t.Setenv("WSTORE_LOG_LEVEL", "debug")

	profile := &config.Profile{Name: "p", BaseURL: "http://profile.example.com/", Username: "alice"}

	cfg, err := config.Load(profile, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com/", cfg.BaseURL)
	assert.Equal(t, "bob:hunter2", cfg.Auth)
	assert.True(t, cfg.Include)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Flags(t *testing.T) {
	t.Run("set flags override env", func(t *testing.T) {
		t.Setenv("WSTORE_BASE_URL", "http://env.example.com/")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"-b", "http://flag.example.com/", "-i", "-o", "out.txt", "--log-level", "error"}))

		cfg, err := config.Load(nil, flags)
		require.NoError(t, err)

		assert.Equal(t, "http://flag.example.com/", cfg.BaseURL)
		assert.True(t, cfg.Include)
		assert.Equal(t, "out.txt", cfg.Output)
		assert.Equal(t, "error", cfg.Log.Level)
	})

	t.Run("unset flags do not override", func(t *testing.T) {
		t.Setenv("WSTORE_BASE_URL", "http://env.example.com/")

		flags := newFlags()
		require.NoError(t, flags.Parse(nil))

		cfg, err := config.Load(nil, flags)
		require.NoError(t, err)
		assert.Equal(t, "http://env.example.com/", cfg.BaseURL)
	})
}

func TestLoad_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid base URL", []string{"--base-url", "not a url"}},
		{"invalid log level", []string{"--log-level", "verbose"}},
		{"auth without colon", []string{"--auth", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := newFlags()
			require.NoError(t, flags.Parse(tt.args))

			_, err := config.Load(nil, flags)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestConfig_TransferConfig(t *testing.T) {
	t.Run("with auth", func(t *testing.T) {
		cfg := &config.Config{
			BaseURL: "http://localhost:4500/",
			Auth:    "alice:secret",
			Include: true,
			Output:  "out.bin",
		}

		tc, err := cfg.TransferConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4500/", tc.BaseURL)
		require.NotNil(t, tc.Credentials)
		assert.Equal(t, "alice", tc.Credentials.Username)
		assert.Equal(t, "secret", tc.Credentials.Password)
		assert.True(t, tc.Options.IncludeHeaders)
		assert.Equal(t, "out.bin", tc.Options.OutputPath)
	})

	t.Run("without auth", func(t *testing.T) {
		tc, err := (&config.Config{BaseURL: "http://localhost:4500/"}).TransferConfig()
		require.NoError(t, err)
		assert.Nil(t, tc.Credentials)
	})

	t.Run("malformed auth", func(t *testing.T) {
		_, err := (&config.Config{Auth: "alice"}).TransferConfig()
		assert.ErrorIs(t, err, transfer.ErrInvalidCredentials)
	})
}
