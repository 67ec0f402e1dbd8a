// ABOUTME: Centralized path resolution for toolscout directories
// ABOUTME: Respects TOOLSCOUT_HOME and CLAUDE_CONFIG_DIR environment variables for isolation
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// MustToolscoutHome returns the toolscout home directory.
// Checks TOOLSCOUT_HOME env var first, falls back to ~/.toolscout.
// Panics if TOOLSCOUT_HOME is set but invalid (whitespace-only or
// relative path), or if the home directory cannot be determined.
func MustToolscoutHome() string {
	if home := os.Getenv("TOOLSCOUT_HOME"); home != "" {
		home = strings.TrimSpace(home)
		if home == "" {
			panic("TOOLSCOUT_HOME is set but contains only whitespace")
		}
		if !filepath.IsAbs(home) {
			panic("TOOLSCOUT_HOME must be an absolute path: " + home)
		}
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	return filepath.Join(homeDir, ".toolscout")
}

// MustClaudeDir returns the Claude configuration directory.
// Checks CLAUDE_CONFIG_DIR env var first, falls back to ~/.claude.
// Panics if home directory cannot be determined.
func MustClaudeDir() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	return filepath.Join(homeDir, ".claude")
}

// IndexPath returns the location of the capability index document
func IndexPath(home string) string {
	return filepath.Join(home, "index.json")
}

// EventsPath returns the location of the audit-trail log
func EventsPath(home string) string {
	return filepath.Join(home, "events.jsonl")
}

// DefaultScanLocations returns the standard places capabilities live in
// a Claude installation: the plugin cache and the user-level component
// directories.
func DefaultScanLocations(claudeDir string) []string {
	return []string{
		filepath.Join(claudeDir, "plugins", "cache"),
		filepath.Join(claudeDir, "plugins", "repos"),
	}
}
