package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/wstore/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "wstore",
	Version: version,
	Short:   "Command-line client for a WebStore file server",
	Long: `wstore - Command-line client for a WebStore file server

Each command performs a single HTTP request:
  - get:    GET    <base-url>/<remote>
  - post:   POST   <base-url>/<remote>  (creates a file)
  - put:    PUT    <base-url>/<remote>  (creates or replaces a file)
  - delete: DELETE <base-url>/<remote>

Credentials given with --auth are sent as HTTP Basic authentication on
post, put and delete. Downloads are never authenticated.

Remote paths are resolved against the base URL like links in a web page:
a path starting with "/" replaces the base URL's path, anything else is
resolved relative to it.`,
	Example: `  wstore get files/image.jpg ./downloads/image.jpg
  wstore put ./local/doc.pdf files/doc.pdf
  wstore delete files/oldfile.txt
  wstore --base-url=http://example.com/files/ --auth=user:pass get image.jpg
  wstore get -i files/config.json
  wstore get files/data.json -o ./output.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "profile file (default: ~/.wstore/config.yaml, env: WSTORE_CONFIG)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "profile name (env: WSTORE_PROFILE)")
	rootCmd.PersistentFlags().StringP("base-url", "b", "", "base URL for the WebStore server (default: http://localhost:4500/, env: WSTORE_BASE_URL)")
	rootCmd.PersistentFlags().StringP("auth", "a", "", "basic auth credentials in format username:password (env: WSTORE_AUTH)")
	rootCmd.PersistentFlags().BoolP("include", "i", false, "include protocol response headers in the output (env: WSTORE_INCLUDE)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write to file instead of stdout (env: WSTORE_OUTPUT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: warn, env: WSTORE_LOG_LEVEL)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError is returned when the failure was already reported and
// only the exit code remains to be set.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}
