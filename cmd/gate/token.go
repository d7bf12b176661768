package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/downloadgate/internal/gate/app"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint, verify and inspect gate tokens",
	Long: `Operator tools for gate tokens. The signing secret is taken from
--secret, or DOWNLOAD_GATE_SECRET when the flag is not set.`,
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a gate token without a captcha check",
	Args:  cobra.NoArgs,
	RunE:  tokenMintCmdRun,
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify [token]",
	Short: "Report whether a gate token is currently valid",
	Args:  cobra.ExactArgs(1),
	RunE:  tokenVerifyCmdRun,
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect [token]",
	Short: "Verify a gate token and print its payload",
	Args:  cobra.ExactArgs(1),
	RunE:  tokenInspectCmdRun,
}

type tokenFlags struct {
	secret string
	ttl    time.Duration
}

var tokenArgs tokenFlags

func init() {
	tokenCmd.PersistentFlags().StringVar(&tokenArgs.secret, "secret", "",
		"Signing secret. Defaults to DOWNLOAD_GATE_SECRET.")
	tokenMintCmd.Flags().DurationVar(&tokenArgs.ttl, "ttl", 0,
		"Token lifetime. Defaults to GATE_TOKEN_TTL or 10m.")

	tokenCmd.AddCommand(tokenMintCmd)
	tokenCmd.AddCommand(tokenVerifyCmd)
	tokenCmd.AddCommand(tokenInspectCmd)
}

func newAuthority() (*gatetoken.Authority, error) {
	cfg := app.LoadConfig()

	secret := tokenArgs.secret
	if secret == "" {
		secret = cfg.GateSecret
	}
	if secret == "" {
		return nil, errors.New("no signing secret: set --secret or DOWNLOAD_GATE_SECRET")
	}

	a := gatetoken.NewAuthority(secret)
	a.TTL = cfg.GateTokenTTL
	if tokenArgs.ttl != 0 {
		a.TTL = tokenArgs.ttl
	}
	return a, nil
}

func tokenMintCmdRun(cmd *cobra.Command, args []string) error {
	a, err := newAuthority()
	if err != nil {
		return err
	}

	token, err := a.Issue()
	if err != nil {
		return fmt.Errorf("failed to mint token: %w", err)
	}

	cmd.Println(token)
	return nil
}

func tokenVerifyCmdRun(cmd *cobra.Command, args []string) error {
	a, err := newAuthority()
	if err != nil {
		return err
	}

	if _, err := a.Inspect(args[0]); err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}

	cmd.Println("✔ token is valid")
	return nil
}

func tokenInspectCmdRun(cmd *cobra.Command, args []string) error {
	a, err := newAuthority()
	if err != nil {
		return err
	}

	payload, inspectErr := a.Inspect(args[0])
	if payload.Purpose == "" && inspectErr != nil {
		return fmt.Errorf("token rejected: %w", inspectErr)
	}

	out, err := json.MarshalIndent(struct {
		gatetoken.Payload
		Issued  string `json:"issued"`
		Expires string `json:"expires"`
		Valid   bool   `json:"valid"`
	}{
		Payload: payload,
		Issued:  time.Unix(payload.IssuedAt, 0).UTC().Format(time.RFC3339),
		Expires: time.Unix(payload.ExpiresAt, 0).UTC().Format(time.RFC3339),
		Valid:   inspectErr == nil,
	}, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(out))
	if inspectErr != nil {
		return fmt.Errorf("token rejected: %w", inspectErr)
	}
	return nil
}
