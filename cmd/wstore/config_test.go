package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/wstore/config"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().StringP("profile", "p", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestSelectProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WSTORE_CONFIG", "")
	t.Setenv("WSTORE_PROFILE", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`profiles:
  - name: local
    base_url: http://localhost:4500/
  - name: prod
    base_url: https://files.example.com/
    default: true
`), 0o600)
	require.NoError(t, err)

	t.Run("missing default file means no profile", func(t *testing.T) {
		p, err := selectProfile(newTestCommand(t))
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := selectProfile(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("default profile", func(t *testing.T) {
		p, err := selectProfile(newTestCommand(t, "--config", path))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "prod", p.Name)
	})

	t.Run("named profile", func(t *testing.T) {
		p, err := selectProfile(newTestCommand(t, "--config", path, "-p", "local"))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "local", p.Name)
	})

	t.Run("profile from env", func(t *testing.T) {
		t.Setenv("WSTORE_CONFIG", path)
		t.Setenv("WSTORE_PROFILE", "local")

		p, err := selectProfile(newTestCommand(t))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "local", p.Name)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := selectProfile(newTestCommand(t, "--config", path, "-p", "staging"))
		assert.ErrorIs(t, err, config.ErrProfileNotFound)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("http://localhost:4500/"))
	assert.NoError(t, validateBaseURL("https://example.com/files/"))
	assert.Error(t, validateBaseURL(""))
	assert.Error(t, validateBaseURL("ftp://example.com/"))
	assert.Error(t, validateBaseURL("http://"))
}
