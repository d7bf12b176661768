package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/downloadgate/internal/gate/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Args:  cobra.NoArgs,
	RunE:  serveCmdRun,
}

type serveFlags struct {
	port int
}

var serveArgs serveFlags

func init() {
	serveCmd.Flags().IntVar(&serveArgs.port, "port", 0,
		"Port to listen on. Overrides PORT when set.")
}

func serveCmdRun(cmd *cobra.Command, args []string) error {
	cfg := app.LoadConfig()
	if serveArgs.port > 0 {
		cfg.Port = serveArgs.port
	}

	application, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run()
}
