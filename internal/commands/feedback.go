// ABOUTME: Feedback command for recording accept/reject/outcome signals
// ABOUTME: Each signal immediately adjusts the capability's learned fields
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolscout/toolscout/internal/ui"
)

var completedFailure bool

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record feedback about a recommended tool",
	Long: `Record how a recommendation worked out. Feedback nudges the
capability's learned fields and shifts future rankings:

  accepted   counts a use, bumps confidence slightly
  rejected   lowers confidence slightly
  completed  folds the task outcome into the success rate`,
}

var feedbackAcceptedCmd = &cobra.Command{
	Use:   "accepted <capability-id>",
	Short: "Record that a recommendation was accepted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine(nil)
		if err != nil {
			return err
		}
		if err := eng.Accepted(args[0], ""); err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}
		ui.PrintSuccess("Recorded acceptance of " + args[0])
		return nil
	},
}

var feedbackRejectedCmd = &cobra.Command{
	Use:   "rejected <capability-id>",
	Short: "Record that a recommendation was declined",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine(nil)
		if err != nil {
			return err
		}
		if err := eng.Rejected(args[0], ""); err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}
		ui.PrintSuccess("Recorded rejection of " + args[0])
		return nil
	},
}

var feedbackCompletedCmd = &cobra.Command{
	Use:   "completed <capability-id>",
	Short: "Record whether a task completed successfully",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine(nil)
		if err != nil {
			return err
		}
		if err := eng.Completed(args[0], !completedFailure); err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}
		outcome := "success"
		if completedFailure {
			outcome = "failure"
		}
		ui.PrintSuccess(fmt.Sprintf("Recorded %s for %s", outcome, args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(feedbackAcceptedCmd)
	feedbackCmd.AddCommand(feedbackRejectedCmd)
	feedbackCmd.AddCommand(feedbackCompletedCmd)

	feedbackCompletedCmd.Flags().BoolVar(&completedFailure, "failure", false, "Record the task as failed instead of succeeded")
}
