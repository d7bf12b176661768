package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/downloadgate/internal/gate/app"
)

var rootCmd = &cobra.Command{
	Use:               "gate",
	Version:           app.BuildVersion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	Short:             "Captcha-gated download catalog and download telemetry service",
	Long: `gate serves the download catalog to visitors who have passed a captcha
check and records anonymized download telemetry.

Configuration is read from the environment and, when present, a .env file in
the working directory.`,
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(secretCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}
