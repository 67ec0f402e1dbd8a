// ABOUTME: Events command for querying the scan and feedback audit trail
// ABOUTME: Filters by kind, capability id, and age; most recent first
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/config"
	"github.com/toolscout/toolscout/internal/events"
	"github.com/toolscout/toolscout/internal/ui"
)

var (
	eventsKind  string
	eventsID    string
	eventsSince time.Duration
	eventsLimit int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the scan and feedback audit trail",
	Example: `  # Last 20 events
  toolscout events

  # Feedback for one capability over the past week
  toolscout events --id my-plugin:deploy --since 168h`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().StringVar(&eventsKind, "kind", "", "Filter by kind: scan, accepted, rejected, completed")
	eventsCmd.Flags().StringVar(&eventsID, "id", "", "Filter by capability id")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "Only events newer than this age (e.g. 24h)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "Maximum events to show")
}

func runEvents(cmd *cobra.Command, args []string) error {
	writer, err := events.NewJSONLWriter(config.EventsPath(toolscoutHome))
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}

	filters := events.Filters{
		Kind:         events.Kind(eventsKind),
		CapabilityID: eventsID,
		Limit:        eventsLimit,
	}
	if eventsSince > 0 {
		filters.Since = time.Now().Add(-eventsSince)
	}

	list, err := writer.Query(filters)
	if err != nil {
		return fmt.Errorf("failed to query events: %w", err)
	}
	if len(list) == 0 {
		ui.PrintMuted("No matching events.")
		return nil
	}

	for _, e := range list {
		line := fmt.Sprintf("%s  %-9s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Kind)
		if e.CapabilityID != "" {
			line += "  " + ui.Bold(e.CapabilityID)
		}
		if e.Success != nil {
			if *e.Success {
				line += "  " + ui.Success("success")
			} else {
				line += "  " + ui.Error("failure")
			}
		}
		if e.Kind == events.KindScan && e.Context != nil {
			line += ui.Muted(fmt.Sprintf("  %v capabilities, %v errors", e.Context["capabilities"], e.Context["errors"]))
		}
		fmt.Println(line)
	}
	return nil
}
