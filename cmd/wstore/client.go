package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/wstore/config"
	"github.com/sagarc03/wstore/transfer"
)

// newClient builds a transfer client from the config loaded by the root
// command. Failures terminate the process with status 1.
func newClient(cmd *cobra.Command) (*transfer.Client, error) {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return nil, err
	}

	transferCfg, err := cfg.TransferConfig()
	if err != nil {
		return nil, err
	}

	slog.Debug("client configured",
		"base_url", transferCfg.BaseURL,
		"authenticated", transferCfg.Credentials != nil,
		"include", transferCfg.Options.IncludeHeaders,
		"output", transferCfg.Options.OutputPath,
	)

	return transfer.New(transferCfg,
		transfer.WithErrorMode(transfer.ModeExit),
		transfer.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		transfer.WithLogger(slog.Default()),
	)
}

// reported converts an error the client already printed into an exit code.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 1}
}
