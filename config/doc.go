// Package config provides configuration loading and validation for wstore.
//
// The package handles the profile file, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. The selected profile from the profile file
//  3. Environment variables (WSTORE_ prefix)
//  4. CLI flags that were explicitly set
//
// # Usage
//
//	file, _ := config.LoadProfileFile(config.DefaultProfilePath())
//	profile, _ := file.GetProfile("")
//
//	cfg, err := config.Load(profile, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with the WSTORE_ prefix:
//   - base_url → WSTORE_BASE_URL
//   - auth → WSTORE_AUTH
//   - log.level → WSTORE_LOG_LEVEL
//
// # Profiles
//
// The profile file (~/.wstore/config.yaml by default) stores named servers:
//
//	profiles:
//	  - name: local
//	    base_url: http://localhost:4500/
//	    username: alice
//	    password: secret
//	    default: true
package config
