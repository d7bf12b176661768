package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("gate-token-1")
	fp1b := FingerprintToken("gate-token-1")
	fp2 := FingerprintToken("gate-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 12)
	require.NotContains(t, fp1a, "gate-token")
}

func TestFingerprintToken_Empty(t *testing.T) {
	require.Len(t, FingerprintToken(""), 12)
}
