// ABOUTME: Global configuration management for toolscout
// ABOUTME: Handles loading and saving ~/.toolscout/config.json
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// YesFlag skips interactive prompts when set via --yes
var YesFlag bool

// GlobalConfig represents the global configuration file structure
type GlobalConfig struct {
	// ScanLocations are the directories scanned for capabilities.
	// Empty means the default Claude plugin locations.
	ScanLocations []string `json:"scanLocations,omitempty"`
	// StalenessSeconds is how old the index may grow before a
	// recommendation triggers a rescan. Zero means the default (3600).
	StalenessSeconds int `json:"stalenessSeconds,omitempty"`
	// ExcludedPlugins are plugin name patterns never recommended
	ExcludedPlugins []string `json:"excludedPlugins,omitempty"`
	// MinScore drops recommendations below this relevance
	MinScore float64 `json:"minScore,omitempty"`
	// DisableAutoUse downgrades the auto-use tier to suggest-one
	DisableAutoUse bool `json:"disableAutoUse,omitempty"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{}
}

// configPath returns the path to the global config file
func configPath(home string) string {
	return filepath.Join(home, "config.json")
}

// Load reads the global config file, creating it with defaults if it
// doesn't exist
func Load(home string) (*GlobalConfig, error) {
	cfgPath := configPath(home)

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(home, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	var cfg GlobalConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the global config to disk
func Save(home string, cfg *GlobalConfig) error {
	cfgPath := configPath(home)

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfgPath, data, 0644)
}
