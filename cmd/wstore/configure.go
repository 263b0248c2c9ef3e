package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/wstore/config"
	"github.com/sagarc03/wstore/transfer"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage server profiles",
	Long: `Manage server profiles in the profile file.

Profiles save a base URL and credentials for a WebStore server. Select one
with --profile or WSTORE_PROFILE; otherwise the default profile is used.

Profiles are stored in ~/.wstore/config.yaml`,
	// Profile management must work even when the current settings are invalid.
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		setupLogging(os.Getenv("WSTORE_ENV"), level)
		return nil
	},
}

var configureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured profiles",
	Long: `List all profiles configured in the profile file.

The default profile is marked with an asterisk (*).`,
	RunE: runConfigureList,
}

var configureAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new profile",
	Long: `Add a new profile interactively.

You will be prompted for:
  - Base URL
  - Username
  - Password
  - Whether to set as default

The server connection will be tested before saving.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigureAdd,
}

var configureRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runConfigureRemove,
}

var configureSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigureSetDefault,
}

var configureShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show profile details",
	Long: `Show details for a profile.

If no name is provided, shows the default profile.
The password is hidden by default; use --show-secrets to reveal it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigureShow,
}

var showSecrets bool

func init() {
	configureCmd.AddCommand(configureListCmd)
	configureCmd.AddCommand(configureAddCmd)
	configureCmd.AddCommand(configureRemoveCmd)
	configureCmd.AddCommand(configureSetDefaultCmd)
	configureCmd.AddCommand(configureShowCmd)

	configureShowCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "show the password")
}

func runConfigureList(cmd *cobra.Command, _ []string) error {
	configPath, _ := getConfigPath(cmd)

	file, err := config.LoadProfileFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load config: %w", err)
	}

	if file == nil || len(file.Profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured.")
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'wstore configure add <name>' to create one.")
		return nil
	}

	return config.FormatProfileList(cmd.OutOrStdout(), file.Profiles, file.DefaultProfileName())
}

func runConfigureAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	configPath, _ := getConfigPath(cmd)
	out := cmd.OutOrStdout()

	// Load existing file or start a new one
	file, err := config.LoadProfileFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		file = &config.ProfileFile{}
	}

	existingProfile, _ := file.GetProfile(name)
	if existingProfile != nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Profile '%s' already exists. Update it", name),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Fprintln(out, "Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	baseURLPrompt := promptui.Prompt{
		Label:    "Base URL",
		Default:  transfer.DefaultBaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	usernamePrompt := promptui.Prompt{
		Label: "Username (empty for none)",
	}
	username, err := usernamePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	password := ""
	if username != "" {
		passwordPrompt := promptui.Prompt{
			Label: "Password",
			Mask:  '*',
		}
		password, err = passwordPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}
	}

	setAsDefault := false
	if len(file.Profiles) == 0 {
		setAsDefault = true // First profile is always default
	} else {
		defaultPrompt := promptui.Prompt{
			Label:     "Set as default profile",
			IsConfirm: true,
		}
		if _, promptErr := defaultPrompt.Run(); promptErr == nil {
			setAsDefault = true
		}
	}

	fmt.Fprint(out, "Testing connection... ")
	if connErr := testServerConnection(baseURL); connErr != nil {
		fmt.Fprintln(out, "FAILED")
		fmt.Fprintf(out, "Warning: Could not connect to server: %v\n", connErr)

		continuePrompt := promptui.Prompt{
			Label:     "Save profile anyway",
			IsConfirm: true,
		}
		if _, promptErr := continuePrompt.Run(); promptErr != nil {
			fmt.Fprintln(out, "Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	} else {
		fmt.Fprintln(out, "OK")
	}

	// Base URLs keep their trailing slash: it changes how remote paths resolve.
	newProfile := config.Profile{
		Name:     name,
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		Default:  setAsDefault,
	}

	if setAsDefault {
		for i := range file.Profiles {
			file.Profiles[i].Default = false
		}
	}

	if existingProfile != nil {
		err = file.UpdateProfile(newProfile)
	} else {
		err = file.AddProfile(newProfile)
	}
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if err := file.Save(configPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if existingProfile != nil {
		fmt.Fprintf(out, "Profile '%s' updated.\n", name)
	} else {
		fmt.Fprintf(out, "Profile '%s' added.\n", name)
	}

	if setAsDefault {
		fmt.Fprintln(out, "Set as default profile.")
	}

	return nil
}

func runConfigureRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	configPath, _ := getConfigPath(cmd)
	out := cmd.OutOrStdout()

	file, err := config.LoadProfileFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err = file.GetProfile(name); err != nil {
		return err
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Remove profile '%s'", name),
		IsConfirm: true,
	}
	if _, promptErr := prompt.Run(); promptErr != nil {
		fmt.Fprintln(out, "Cancelled.")
		return nil //nolint:nilerr // User cancelled, not an error
	}

	if err := file.RemoveProfile(name); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}

	if err := file.Save(configPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "Profile '%s' removed.\n", name)
	return nil
}

func runConfigureSetDefault(cmd *cobra.Command, args []string) error {
	name := args[0]
	configPath, _ := getConfigPath(cmd)

	file, err := config.LoadProfileFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := file.SetDefault(name); err != nil {
		return err
	}

	if err := file.Save(configPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Default profile set to '%s'.\n", name)
	return nil
}

func runConfigureShow(cmd *cobra.Command, args []string) error {
	configPath, _ := getConfigPath(cmd)

	file, err := config.LoadProfileFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	p, err := file.GetProfile(name)
	if err != nil {
		return err
	}

	isDefault := p.Name == file.DefaultProfileName()
	return config.FormatProfileShow(cmd.OutOrStdout(), *p, isDefault, showSecrets)
}

// validateBaseURL accepts absolute http and https URLs.
func validateBaseURL(input string) error {
	if input == "" {
		return errors.New("base URL is required")
	}
	parsedURL, err := url.Parse(input)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return errors.New("URL must include a host")
	}
	return nil
}

// testServerConnection tests if the server is reachable.
// It sends a GET request to the base URL and considers any HTTP response as success.
func testServerConnection(baseURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any HTTP response means the server is reachable
	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
