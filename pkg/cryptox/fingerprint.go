package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// fingerprintLen is the number of base64url characters kept from the digest.
const fingerprintLen = 12

// FingerprintToken returns a short, deterministic SHA-256 fingerprint of a
// token, suitable for correlating log lines without recording the token.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:fingerprintLen]
}
