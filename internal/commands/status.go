// ABOUTME: Status command showing index freshness and capability totals
// ABOUTME: Displays per-type counts, plugin counts, and last scan statistics
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/engine"
	"github.com/toolscout/toolscout/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show an overview of the capability index",
	Long: `Display the current state of the capability index: how many tools are
indexed, how they break down by type, and how fresh the last scan is.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, cfg, err := newEngine(nil)
	if err != nil {
		return err
	}

	idx, err := eng.Index()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	fmt.Println(ui.RenderHeader("toolscout"))

	if idx.LastScan.IsZero() {
		ui.PrintMuted("No index yet. Run 'toolscout scan' to build one.")
		return nil
	}

	age := idx.Age(time.Now())
	freshness := fmt.Sprintf("%s ago", age.Round(time.Second))
	staleness := engine.DefaultStaleness
	if cfg.StalenessSeconds > 0 {
		staleness = time.Duration(cfg.StalenessSeconds) * time.Second
	}
	if age > staleness {
		freshness += " " + ui.Warning("(stale, next recommend will rescan)")
	}

	fmt.Println(ui.RenderDetail("Capabilities", fmt.Sprintf("%d", idx.TotalCapabilities)))
	fmt.Println(ui.RenderDetail("Plugins", fmt.Sprintf("%d", len(idx.PluginIndex))))
	fmt.Println(ui.RenderDetail("Keywords", fmt.Sprintf("%d", len(idx.KeywordIndex))))
	fmt.Println(ui.RenderDetail("Last scan", freshness))

	counts := make(map[capability.Type]int)
	for _, c := range idx.Capabilities {
		counts[c.Type]++
	}
	fmt.Println()
	fmt.Println(ui.RenderSection("By type", -1))
	for _, t := range capability.ValidTypes {
		if counts[t] > 0 {
			fmt.Println(ui.Indent(fmt.Sprintf("%-12s %d", t, counts[t]), 1))
		}
	}

	if n := len(idx.Statistics.Errors); n > 0 {
		fmt.Println()
		ui.PrintWarning(fmt.Sprintf("%d items failed during the last scan (see 'toolscout scan' output)", n))
	}
	return nil
}
