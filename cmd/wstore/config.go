package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/wstore/config"
)

// loadConfig merges defaults, the selected profile, env vars and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	profile, err := selectProfile(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(profile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// getConfigPath returns the profile file path and whether the user chose it
// explicitly.
func getConfigPath(cmd *cobra.Command) (string, bool) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, true
	}
	if path := os.Getenv("WSTORE_CONFIG"); path != "" {
		return path, true
	}
	return config.DefaultProfilePath(), false
}

// getProfileName returns the requested profile name, or "" for the default.
func getProfileName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("profile"); name != "" {
		return name
	}
	return os.Getenv("WSTORE_PROFILE")
}

// selectProfile loads the profile to layer under env vars and flags. A missing
// default profile file is not an error; it just means no profile.
func selectProfile(cmd *cobra.Command) (*config.Profile, error) {
	path, explicit := getConfigPath(cmd)
	name := getProfileName(cmd)

	if path == "" {
		if name != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrProfileNotFound, name)
		}
		return nil, nil
	}

	file, err := config.LoadProfileFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit && name == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	if name == "" && len(file.Profiles) == 0 {
		return nil, nil
	}
	return file.GetProfile(name)
}
