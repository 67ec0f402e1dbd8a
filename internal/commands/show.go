// ABOUTME: Show command with full detail for one capability
// ABOUTME: Renders the description as markdown and lists learned fields
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <capability-id>",
	Short: "Show full details for one indexed capability",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print description without markdown rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(nil)
	if err != nil {
		return err
	}

	idx, err := eng.Index()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	c := idx.Get(args[0])
	if c == nil {
		return fmt.Errorf("unknown capability %q (run 'toolscout list' to see what is indexed)", args[0])
	}

	fmt.Println(ui.RenderHeader(c.ID))
	fmt.Println(ui.RenderDetail("Type", string(c.Type)))
	fmt.Println(ui.RenderDetail("Plugin", c.Plugin))
	fmt.Println(ui.RenderDetail("Path", c.Path))
	if len(c.Keywords) > 0 {
		fmt.Println(ui.RenderDetail("Keywords", joinLimited(c.Keywords, 12)))
	}
	if len(c.Triggers) > 0 {
		fmt.Println(ui.RenderSection("Triggers", len(c.Triggers)))
		for _, t := range c.Triggers {
			fmt.Println(ui.Indent(ui.SymbolBullet+" "+t, 1))
		}
	}

	if c.Description != "" {
		fmt.Println()
		fmt.Print(ui.RenderMarkdown(c.Description, showRaw))
	}

	fmt.Println(ui.RenderSection("Usage", -1))
	fmt.Println(ui.RenderDetail("Times used", fmt.Sprintf("%d", c.UsageCount)))
	fmt.Println(ui.RenderDetail("Success rate", fmt.Sprintf("%.0f%%", c.SuccessRate*100)))
	fmt.Println(ui.RenderDetail("Confidence boost", fmt.Sprintf("%+.2f", c.ConfidenceBoost)))
	if c.LastUsed != nil {
		fmt.Println(ui.RenderDetail("Last used", c.LastUsed.Format(time.RFC1123)))
	}
	return nil
}

func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + fmt.Sprintf(" … and %d more", len(items)-limit)
}
