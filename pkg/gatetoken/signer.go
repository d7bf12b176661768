package gatetoken

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Sign computes HMAC-SHA256 over payload keyed by secret and returns the
// encoded digest.
func Sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return Encode(mac.Sum(nil))
}

// validSignature recomputes the signature of payload and compares it with sig
// in constant time.
func validSignature(payload, sig, secret string) bool {
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(sig), []byte(expected))
}
