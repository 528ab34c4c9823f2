package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hermine-app/insights/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics JSON API",
	Long: `Start the analytics API server.

Examples:
  insights serve              # Start on the configured port
  insights serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer stack.shutdown(context.Background())

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	port := stack.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	server := web.NewServer(stack.service, port, stack.logger.Zerolog())
	return server.Start(ctx)
}
