// ABOUTME: Recommend command that ranks indexed tools for a task description
// ABOUTME: Renders tiers, prompts for confirmation, and records feedback
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/config"
	"github.com/toolscout/toolscout/internal/recommend"
	"github.com/toolscout/toolscout/internal/ui"
)

var (
	recommendType     string
	recommendMinScore float64
	recommendExclude  []string
	recommendJSON     bool
	recommendNoInput  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <task description>",
	Short: "Recommend the best-matching tool for a task",
	Long: `Score every indexed capability against a free-text task description
and present the best matches.

A very strong match is offered for immediate use; a good match asks for
confirmation; several moderate matches are offered as a choice. When
nothing relevant is indexed, toolscout asks clarifying questions instead.

Accepting or declining a recommendation feeds back into future ranking.`,
	Example: `  # Find a tool for a deployment task
  toolscout recommend "deploy to AWS production"

  # Only consider commands, machine-readable output
  toolscout recommend "run the test suite" --type command --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVar(&recommendType, "type", "", "Only consider capabilities of this type (agent, command, skill, hook, mcp-server, mcp-tool)")
	recommendCmd.Flags().Float64Var(&recommendMinScore, "min-score", 0, "Drop candidates below this relevance (0-1)")
	recommendCmd.Flags().StringSliceVar(&recommendExclude, "exclude", nil, "Plugin patterns to exclude (repeatable; supports trailing *)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Emit the recommendation as JSON")
	recommendCmd.Flags().BoolVar(&recommendNoInput, "no-input", false, "Never prompt; print candidates and exit")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	eng, cfg, err := newEngine(nil)
	if err != nil {
		return err
	}

	preferred := capability.Type(recommendType)
	if recommendType != "" && !preferred.IsValid() {
		return fmt.Errorf("invalid --type %q: must be one of agent, command, skill, hook, mcp-server, mcp-tool", recommendType)
	}

	constraints := recommend.Constraints{
		ExcludedPlugins: append(recommendExclude, cfg.ExcludedPlugins...),
		PreferredType:   preferred,
		MinScore:        recommendMinScore,
	}
	if constraints.MinScore == 0 {
		constraints.MinScore = cfg.MinScore
	}

	rec, err := eng.Recommend(context.Background(), query, constraints)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if recommendJSON {
		return printRecommendationJSON(rec)
	}

	switch rec.Tier {
	case recommend.TierAutoUse:
		if cfg.DisableAutoUse {
			return presentSuggestOne(eng, rec)
		}
		return presentAutoUse(eng, rec)
	case recommend.TierSuggestOne:
		return presentSuggestOne(eng, rec)
	case recommend.TierSuggestMany:
		return presentSuggestMany(eng, rec)
	default:
		return presentInsufficient(rec)
	}
}

func presentAutoUse(eng feedbackRecorder, rec *recommend.Recommendation) error {
	top := rec.Candidates[0]
	ui.PrintSuccess(fmt.Sprintf("Using %s %s", ui.Bold(top.Capability.ID), ui.Muted(fmt.Sprintf("(%s relevance)", scorePercent(top.Score)))))
	printCandidateDetail(top, 1)
	return eng.Accepted(top.Capability.ID, rec.Query)
}

func presentSuggestOne(eng feedbackRecorder, rec *recommend.Recommendation) error {
	top := rec.Candidates[0]
	fmt.Printf("%s %s %s\n", ui.Info(ui.SymbolArrow), ui.Bold(top.Capability.ID), ui.RenderScore(top.Score))
	printCandidateDetail(top, 1)

	if recommendNoInput {
		return nil
	}
	if config.YesFlag || ui.PromptYesNo(os.Stdin, "Use this tool?", true) {
		return eng.Accepted(top.Capability.ID, rec.Query)
	}
	return eng.Rejected(top.Capability.ID, rec.Query)
}

func presentSuggestMany(eng feedbackRecorder, rec *recommend.Recommendation) error {
	fmt.Println(ui.RenderSection("Possible matches", len(rec.Candidates)))
	for i, cand := range rec.Candidates {
		fmt.Printf("%d. %s %s\n", i+1, ui.Bold(cand.Capability.ID), ui.RenderScore(cand.Score))
		printCandidateDetail(cand, 2)
	}

	if recommendNoInput || config.YesFlag {
		return nil
	}
	choice := ui.PromptChoice(os.Stdin, "Which tool?", len(rec.Candidates))
	if choice < 0 {
		return nil
	}
	return eng.Accepted(rec.Candidates[choice].Capability.ID, rec.Query)
}

func presentInsufficient(rec *recommend.Recommendation) error {
	ui.PrintWarning("No confident match for that task.")
	for _, q := range rec.Questions {
		fmt.Println(ui.Indent(ui.SymbolBullet+" "+q, 1))
	}
	return nil
}

func printCandidateDetail(cand recommend.Candidate, indent int) {
	c := cand.Capability
	fmt.Println(ui.Indent(ui.Muted(fmt.Sprintf("%s %s from ", c.Type, c.Name))+ui.Accent(c.Plugin), indent))
	if c.Description != "" {
		fmt.Println(ui.Indent(c.Description, indent))
	}
	for _, reason := range cand.Reasons {
		fmt.Println(ui.Indent(ui.Muted(ui.SymbolBullet+" "+reason), indent))
	}
}

func printRecommendationJSON(rec *recommend.Recommendation) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func scorePercent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

// feedbackRecorder is the slice of the engine the presentation layer
// needs; narrowed for testability.
type feedbackRecorder interface {
	Accepted(id, query string) error
	Rejected(id, query string) error
}
