package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

const anonymizerInfo = "downloadgate/ip-hash/v1"

// Anonymizer turns client addresses into one-way hex SHA-256 digests so that
// download logs never hold a raw IP.
type Anonymizer struct {
	key []byte
}

// NewAnonymizer derives a 32-byte HMAC key from salt with HKDF-SHA256. An
// empty salt selects a plain, unkeyed SHA-256 digest.
func NewAnonymizer(salt string) (*Anonymizer, error) {
	if salt == "" {
		return &Anonymizer{}, nil
	}

	key := make([]byte, sha256.Size)
	kdf := hkdf.New(sha256.New, []byte(salt), nil, []byte(anonymizerInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive anonymizer key: %w", err)
	}
	return &Anonymizer{key: key}, nil
}

// MustNewAnonymizer is like NewAnonymizer but panics on error.
func MustNewAnonymizer(salt string) *Anonymizer {
	a, err := NewAnonymizer(salt)
	if err != nil {
		panic(fmt.Sprintf("cryptox: %v", err))
	}
	return a
}

// Keyed reports whether digests are salted.
func (a *Anonymizer) Keyed() bool {
	return len(a.key) > 0
}

// HashIP returns the lowercase hex digest of ip. It is deterministic for a
// given salt.
func (a *Anonymizer) HashIP(ip string) string {
	var h hash.Hash
	if a.Keyed() {
		h = hmac.New(sha256.New, a.key)
	} else {
		h = sha256.New()
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}
