// ABOUTME: Scan command that rebuilds or refreshes the capability index
// ABOUTME: Reports per-location progress and skipped/errored item counts
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/collector"
	"github.com/toolscout/toolscout/internal/engine"
	"github.com/toolscout/toolscout/internal/ui"
)

var (
	scanIncremental bool
	scanTimeout     time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan [location...]",
	Short: "Scan for installed tools and rebuild the capability index",
	Long: `Walk the configured scan locations (or the ones given as arguments),
parse every discovered component, and merge the results into the
capability index.

Usage history and feedback data survive rescans: only descriptive
metadata is refreshed. Components that disappeared from a successfully
scanned location are pruned; locations that fail to read keep their
prior entries untouched.`,
	Example: `  # Rescan the default locations
  toolscout scan

  # Scan one extra plugin directory incrementally
  toolscout scan --incremental ~/projects/my-plugin`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "Merge only the given locations, keep entries from others")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "Overall scan deadline; a partial index is kept on expiry")
}

func runScan(cmd *cobra.Command, args []string) error {
	progress := ui.NewScanProgress(os.Stderr)
	coll := collector.New()
	coll.OnLocation = progress.Start

	eng, _, err := newEngine(coll)
	if err != nil {
		return err
	}

	// Explicit locations imply an incremental merge; a full scan always
	// covers the configured set so pruning can see the whole index.
	mode := engine.ModeFull
	if scanIncremental || len(args) > 0 {
		mode = engine.ModeIncremental
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	idx, err := eng.Scan(ctx, args, mode)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	progress.Finish(idx.TotalCapabilities, len(idx.Statistics.Errors))
	fmt.Println(ui.RenderDetail("Plugins scanned", fmt.Sprintf("%d", idx.Statistics.Scanned)))
	fmt.Println(ui.RenderDetail("Skipped", fmt.Sprintf("%d", idx.Statistics.Skipped)))
	fmt.Println(ui.RenderDetail("Duration", idx.Statistics.ScanDuration.Round(time.Millisecond).String()))

	if len(idx.Statistics.Errors) > 0 {
		fmt.Println()
		fmt.Println(ui.RenderSection("Errors", len(idx.Statistics.Errors)))
		for _, e := range idx.Statistics.Errors {
			ui.PrintWarning(fmt.Sprintf("%s: %s", e.Path, e.Error))
		}
	}
	return nil
}
