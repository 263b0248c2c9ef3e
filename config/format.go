package config

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// FormatProfileList writes profiles as a table. The default profile is marked
// with an asterisk. Passwords are never listed.
func FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4    // "NAME"
	maxBaseURLLen := 8 // "BASE URL"
	for i := range profiles {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(profiles[i].Name))
		maxBaseURLLen = max(maxBaseURLLen, utf8.RuneCountInString(profiles[i].BaseURL))
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}
	if maxBaseURLLen > 50 {
		maxBaseURLLen = 50
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxBaseURLLen, "BASE URL", "USERNAME")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxBaseURLLen), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxBaseURLLen, truncate(p.BaseURL, maxBaseURLLen),
			orNotSet(p.Username),
		)
	}

	return nil
}

// FormatProfileShow writes the details of a single profile.
func FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Base URL: %s\n", profile.BaseURL)
	_, _ = fmt.Fprintf(w, "Username: %s\n", orNotSet(profile.Username))
	_, _ = fmt.Fprintf(w, "Password: %s\n", MaskSecret(profile.Password, showSecrets))
	return nil
}

// MaskSecret hides a password. No part of a non-empty secret is shown unless
// showSecrets is set.
func MaskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	return "********"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n-3]) + "..."
	}
	return s
}
