package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer resetCmdArgs()

	buf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetCmdArgs restores flag defaults between runs.
func resetCmdArgs() {
	serveArgs = serveFlags{}
	migrateArgs = migrateFlags{timeout: time.Minute}
	tokenArgs = tokenFlags{}
	secretArgs = secretFlags{bytes: cryptox.SecretSize256}
}

// isolateEnv runs the test in an empty directory with no gate configuration.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"DOWNLOAD_GATE_SECRET", "GATE_TOKEN_TTL", "DATABASE_DRIVER", "DATABASE_DSN"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestTokenMintAndVerify(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "token", "mint", "--secret", "cli-secret")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.True(t, gatetoken.Verify(token, "cli-secret"))

	out, err = executeCommand(t, "token", "verify", token, "--secret", "cli-secret")
	require.NoError(t, err)
	require.Contains(t, out, "token is valid")

	_, err = executeCommand(t, "token", "verify", token, "--secret", "other")
	require.ErrorIs(t, err, gatetoken.ErrSignature)
}

func TestTokenSecretFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DOWNLOAD_GATE_SECRET", "env-secret")

	out, err := executeCommand(t, "token", "mint")
	require.NoError(t, err)
	require.True(t, gatetoken.Verify(strings.TrimSpace(out), "env-secret"))
}

func TestTokenMissingSecret(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand(t, "token", "mint")
	require.ErrorContains(t, err, "no signing secret")
}

func TestTokenMintExpired(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "token", "mint", "--secret", "s", "--ttl=-1m")
	require.NoError(t, err)

	_, err = executeCommand(t, "token", "verify", strings.TrimSpace(out), "--secret", "s")
	require.ErrorIs(t, err, gatetoken.ErrExpired)
}

func TestTokenInspect(t *testing.T) {
	isolateEnv(t)

	a := gatetoken.NewAuthority("s")
	issuedAt := time.Now().Truncate(time.Second)
	token, err := a.IssueAt(issuedAt)
	require.NoError(t, err)

	out, err := executeCommand(t, "token", "inspect", token, "--secret", "s")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, gatetoken.Purpose, got["purpose"])
	require.EqualValues(t, issuedAt.Unix(), got["iat"])
	require.EqualValues(t, issuedAt.Unix()+600, got["exp"])
	require.Equal(t, true, got["valid"])
	require.NotEmpty(t, got["nonce"])

	_, err = executeCommand(t, "token", "inspect", "garbage", "--secret", "s")
	require.ErrorIs(t, err, gatetoken.ErrMalformed)
}

func TestSecret(t *testing.T) {
	out, err := executeCommand(t, "secret")
	require.NoError(t, err)
	require.Len(t, strings.TrimSpace(out), 43)

	out, err = executeCommand(t, "secret", "--bytes", "64")
	require.NoError(t, err)
	require.Len(t, strings.TrimSpace(out), 86)

	_, err = executeCommand(t, "secret", "--bytes", "0")
	require.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	isolateEnv(t)
	dsn := filepath.Join(t.TempDir(), "gate.db")

	out, err := executeCommand(t, "migrate", "--driver", "sqlite", "--dsn", dsn)
	require.NoError(t, err)
	require.Contains(t, out, "migrations applied (sqlite)")

	_, err = os.Stat(dsn)
	require.NoError(t, err)

	out, err = executeCommand(t, "migrate", "--driver", "sqlite", "--dsn", dsn)
	require.NoError(t, err, out)
}

func TestMigrateMissingConfig(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand(t, "migrate")
	require.ErrorContains(t, err, "DATABASE_DRIVER, DATABASE_DSN")
}
