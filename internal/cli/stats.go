package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hermine-app/insights/internal/analytics"
	"github.com/hermine-app/insights/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Long: `Show summary statistics for assistant usage.

Examples:
  insights stats                         # All-time stats
  insights stats --window 7              # Last 7 days
  insights stats --role user             # Regular users only
  insights stats --pattern "@numbr.fr"   # One customer domain`,
	RunE: runStats,
}

// Flags
var (
	statsWindow  int
	statsRole    string
	statsEmail   string
	statsPattern string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVarP(&statsWindow, "window", "w", 0, "Time window in days (0 = all time)")
	statsCmd.Flags().StringVar(&statsRole, "role", "all", "Role filter: all, admin, user")
	statsCmd.Flags().StringVar(&statsEmail, "email", "", "Exact email filter")
	statsCmd.Flags().StringVar(&statsPattern, "pattern", "", "Email pattern filter")
}

func statsCriteria() (analytics.Criteria, error) {
	criteria := analytics.Criteria{
		WindowDays:   statsWindow,
		ExactEmail:   statsEmail,
		EmailPattern: statsPattern,
	}
	switch statsRole {
	case "all":
		criteria.Role = analytics.RoleAll
	case "admin":
		criteria.Role = analytics.RoleAdminOnly
	case "user":
		criteria.Role = analytics.RoleUserOnly
	default:
		return criteria, fmt.Errorf("invalid role %q", statsRole)
	}
	return criteria, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	criteria, err := statsCriteria()
	if err != nil {
		return err
	}

	stack, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer stack.shutdown(ctx)

	overview, err := stack.service.GetOverview(ctx, criteria)
	if err != nil {
		return fmt.Errorf("failed to compute overview: %w", err)
	}
	durations, err := stack.service.GetDurations(ctx, criteria)
	if err != nil {
		return fmt.Errorf("failed to compute durations: %w", err)
	}
	models, err := stack.service.GetModelStats(ctx, criteria)
	if err != nil {
		return fmt.Errorf("failed to compute model stats: %w", err)
	}

	printReport(overview, durations, models, statsWindow)
	return nil
}

func printReport(overview analytics.Overview, durations analytics.DurationReport, models analytics.ModelReport, window int) {
	periodLabel := "All time"
	if window > 0 {
		periodLabel = fmt.Sprintf("Last %d days", window)
	}

	fmt.Println()
	fmt.Printf("  insights Stats\n")
	fmt.Printf("  =====================\n")
	fmt.Println()

	fmt.Printf("  Period:            %s\n", periodLabel)
	fmt.Println()

	fmt.Printf("  Conversations\n")
	fmt.Printf("  -------------\n")
	fmt.Printf("  Total:             %d\n", overview.Stats.TotalConversations)
	fmt.Printf("  Single question:   %d\n", overview.Stats.SingleQuestion)
	fmt.Printf("  Multi question:    %d\n", overview.Stats.MultiQuestions)
	fmt.Printf("  Long (3+):         %d\n", overview.Stats.LongConversations)
	fmt.Printf("  Empty:             %d\n", overview.Stats.EmptyConversations)
	fmt.Printf("  Avg messages:      %.2f\n", overview.Stats.AvgMessagesPerConv)
	fmt.Println()

	fmt.Printf("  Questions\n")
	fmt.Printf("  ---------\n")
	fmt.Printf("  Total:             %s\n", util.FormatNumber(int64(overview.Tally.TotalQuestions)))
	fmt.Printf("  Admin:             %s\n", util.FormatNumber(int64(overview.Tally.AdminQuestions)))
	fmt.Printf("  Users:             %s\n", util.FormatNumber(int64(overview.Tally.UserQuestions)))
	fmt.Printf("  With documents:    %d\n", overview.Docs.WithDocs)
	fmt.Printf("  Without documents: %d\n", overview.Docs.WithoutDocs)
	fmt.Println()

	fmt.Printf("  Cost\n")
	fmt.Printf("  ----\n")
	fmt.Printf("  Displayed total:   $%.4f\n", overview.Costs.TotalCost)
	fmt.Printf("  Tokens:            %s\n", util.FormatNumber(overview.Costs.TotalTokens))
	fmt.Println()

	if durations.Summary.Count > 0 {
		fmt.Printf("  Durations\n")
		fmt.Printf("  ---------\n")
		fmt.Printf("  Measured:          %d\n", durations.Summary.Count)
		fmt.Printf("  Average:           %s\n", durations.Summary.AvgReadable)
		fmt.Printf("  Longest:           %s\n", util.FormatMinutes(durations.Summary.MaxMinutes))
		fmt.Println()
	}

	if overview.Feedback.HasFeedback {
		fmt.Printf("  Feedback\n")
		fmt.Printf("  --------\n")
		fmt.Printf("  Ratings:           %d\n", overview.Feedback.Total)
		fmt.Printf("  Mean:              %.2f / 5\n", overview.Feedback.Mean)
		fmt.Printf("  Satisfaction:      %.1f%%\n", overview.Feedback.Satisfaction)
		fmt.Println()
	}

	if len(models.Models) > 0 {
		fmt.Printf("  Models\n")
		fmt.Printf("  ------\n")
		for _, m := range models.Models {
			fmt.Printf("  %-24s %s msgs  $%.4f\n", m.Model, util.FormatNumber(int64(m.Count)), m.TotalCost)
		}
		fmt.Println()
	}
}
