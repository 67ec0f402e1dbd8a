// ABOUTME: Root command and CLI initialization for toolscout
// ABOUTME: Sets up cobra command structure, global flags, and engine wiring
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/collector"
	"github.com/toolscout/toolscout/internal/config"
	"github.com/toolscout/toolscout/internal/engine"
	"github.com/toolscout/toolscout/internal/events"
	"github.com/toolscout/toolscout/internal/store"
	"github.com/toolscout/toolscout/internal/ui"
)

var (
	claudeDir     string
	toolscoutHome string
)

var rootCmd = &cobra.Command{
	Use:   "toolscout",
	Short: "Index and recommend Claude Code tools for a task",
	Long: `toolscout catalogs the agents, commands, skills, hooks, and MCP servers
installed in a Claude Code environment and recommends the best match for
a free-text task description.

It keeps a local capability index that learns from your accept/reject
feedback, so frequently useful tools rank higher over time.`,
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	// Set up custom help template with lipgloss styling
	ui.SetupHelpTemplate(rootCmd)

	// Global flags - respect TOOLSCOUT_HOME and CLAUDE_CONFIG_DIR if set
	rootCmd.PersistentFlags().StringVar(&claudeDir, "claude-dir", config.MustClaudeDir(), "Claude installation directory")
	rootCmd.PersistentFlags().StringVar(&toolscoutHome, "toolscout-home", config.MustToolscoutHome(), "toolscout home directory")
	rootCmd.PersistentFlags().BoolVarP(&config.YesFlag, "yes", "y", false, "Skip all prompts, use defaults")
}

// newEngine wires the store, collector, audit writer, and configuration
// into an engine for one command invocation. coll may be nil for the
// default collector.
func newEngine(coll *collector.Collector) (*engine.Engine, *config.GlobalConfig, error) {
	cfg, err := config.Load(toolscoutHome)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	locations := cfg.ScanLocations
	if len(locations) == 0 {
		locations = config.DefaultScanLocations(claudeDir)
	}

	audit, err := events.NewJSONLWriter(config.EventsPath(toolscoutHome))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	eng := engine.New(engine.Options{
		Store:     store.New(config.IndexPath(toolscoutHome)),
		Collector: coll,
		Audit:     audit,
		Locations: locations,
		Staleness: time.Duration(cfg.StalenessSeconds) * time.Second,
	})
	return eng, cfg, nil
}
