package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analytics for conversational assistant usage",
	Long: `insights aggregates conversational assistant logs into usage,
cost and feedback analytics.

Serve the JSON API for the dashboard, print a terminal report, or clean
up duplicate questions in the conversation store.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
