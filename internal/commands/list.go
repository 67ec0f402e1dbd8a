// ABOUTME: List command showing indexed capabilities with optional filters
// ABOUTME: Supports filtering by type and plugin, plus JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/ui"
)

var (
	listType   string
	listPlugin string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed capabilities",
	Example: `  # All indexed capabilities
  toolscout list

  # Only skills from one plugin
  toolscout list --type skill --plugin superpowers`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listType, "type", "", "Filter by capability type")
	listCmd.Flags().StringVar(&listPlugin, "plugin", "", "Filter by plugin name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(nil)
	if err != nil {
		return err
	}

	idx, err := eng.Index()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	var caps []*capability.Capability
	for _, c := range idx.All() {
		if listType != "" && string(c.Type) != listType {
			continue
		}
		if listPlugin != "" && c.Plugin != listPlugin {
			continue
		}
		caps = append(caps, c)
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(caps)
	}

	if len(caps) == 0 {
		ui.PrintMuted("No capabilities indexed. Run 'toolscout scan' first.")
		return nil
	}

	fmt.Println(ui.RenderSection("Capabilities", len(caps)))
	for _, c := range caps {
		usage := ""
		if c.UsageCount > 0 {
			usage = fmt.Sprintf(" (used %d times)", c.UsageCount)
		}
		fmt.Printf("  %s %s %s%s\n", ui.Bold(c.ID), ui.Muted(string(c.Type)), c.Description, ui.Muted(usage))
	}
	return nil
}
