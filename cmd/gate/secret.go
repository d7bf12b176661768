package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Generate a random secret for DOWNLOAD_GATE_SECRET or IP_HASH_SALT",
	Args:  cobra.NoArgs,
	RunE:  secretCmdRun,
}

type secretFlags struct {
	bytes int
}

var secretArgs = secretFlags{bytes: cryptox.SecretSize256}

func init() {
	secretCmd.Flags().IntVar(&secretArgs.bytes, "bytes", secretArgs.bytes,
		"Number of random bytes before base64url encoding.")
}

func secretCmdRun(cmd *cobra.Command, args []string) error {
	s, err := cryptox.GenerateSecret(secretArgs.bytes)
	if err != nil {
		return err
	}
	cmd.Println(s)
	return nil
}
