package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove duplicate questions from the conversation store",
	Long: `Scan every conversation and delete messages repeating an
already-seen question (case-insensitive, whitespace-trimmed). The first
occurrence is kept.

Examples:
  insights dedupe            # Delete duplicates
  insights dedupe --dry-run  # Report what would be deleted`,
	RunE: runDedupe,
}

var dedupeDryRun bool

func init() {
	rootCmd.AddCommand(dedupeCmd)
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "Compute the plan without deleting anything")
}

func runDedupe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	stack, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer stack.shutdown(ctx)

	result, err := stack.store.DeleteDuplicateQuestions(ctx, dedupeDryRun)
	if err != nil {
		return fmt.Errorf("failed to dedupe questions: %w", err)
	}

	verb := "Deleted"
	if result.DryRun {
		verb = "Would delete"
	}
	fmt.Printf("Scanned %d messages. %s %d duplicate questions.\n", result.Scanned, verb, result.Deleted)
	return nil
}
