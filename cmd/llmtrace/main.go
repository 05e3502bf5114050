package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/llmtrace/internal/app"
)

func main() {
	root := &cobra.Command{
		Use:           "llmtrace",
		Short:         "Traceability and analytics API over an LLM request log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.New()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return app.Run(cfg)
		},
	}
}
