// Package gatetoken implements the stateless download gate credential: a
// base64url JSON payload and its HMAC-SHA256 signature joined by a single dot.
//
// Tokens are pure functions of the signing secret and the clock. There is no
// nonce store, so a token stays redeemable until it expires and cannot be
// revoked earlier.
package gatetoken

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Purpose binds a token to the download catalog.
	Purpose = "download-catalog"

	// DefaultTTL is the validity window applied when Authority.TTL is zero.
	DefaultTTL = 10 * time.Minute

	separator = "."
)

var (
	ErrMissingSecret = errors.New("gatetoken: signing secret is empty")
	ErrMalformed     = errors.New("gatetoken: malformed token")
	ErrSignature     = errors.New("gatetoken: signature mismatch")
	ErrPurpose       = errors.New("gatetoken: unexpected purpose")
	ErrExpired       = errors.New("gatetoken: token expired")
)

// Payload is the signed body of a gate token. Times are unix seconds.
type Payload struct {
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"nonce"`
	Purpose   string `json:"purpose"`
}

// Authority issues and verifies gate tokens with a single secret.
// The zero values of TTL, Now and Nonce select DefaultTTL, time.Now and a
// random UUID respectively. A negative TTL yields already expired tokens.
type Authority struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
	Nonce  func() string
}

// NewAuthority returns an Authority using the defaults.
func NewAuthority(secret string) *Authority {
	return &Authority{Secret: secret}
}

// Issue mints a token valid from now for the configured TTL.
func (a *Authority) Issue() (string, error) {
	return a.IssueAt(a.now())
}

// IssueAt mints a token as if issued at t.
func (a *Authority) IssueAt(t time.Time) (string, error) {
	if a.Secret == "" {
		return "", ErrMissingSecret
	}

	issued := t.Unix()
	payload := Payload{
		IssuedAt:  issued,
		ExpiresAt: issued + int64(a.ttl()/time.Second),
		Nonce:     a.nonce(),
		Purpose:   Purpose,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gatetoken: encode payload: %w", err)
	}

	encoded := Encode(raw)
	return encoded + separator + Sign(encoded, a.Secret), nil
}

// Verify reports whether token is authentic, carries the catalog purpose and
// has not expired. It never panics and treats every failure as false.
func (a *Authority) Verify(token string) bool {
	_, err := a.Inspect(token)
	return err == nil
}

// Inspect verifies token and returns its payload. The returned error wraps
// one of ErrMalformed, ErrSignature, ErrPurpose or ErrExpired.
func (a *Authority) Inspect(token string) (Payload, error) {
	if a.Secret == "" {
		return Payload{}, ErrMissingSecret
	}

	parts := strings.Split(token, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Payload{}, ErrMalformed
	}
	encoded, sig := parts[0], parts[1]

	if !validSignature(encoded, sig, a.Secret) {
		return Payload{}, ErrSignature
	}

	raw, err := Decode(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if p.Purpose != Purpose {
		return p, ErrPurpose
	}

	// No not-before check: a payload issued in the future is accepted as
	// long as it has not expired.
	if p.ExpiresAt == 0 || p.ExpiresAt < a.now().Unix() {
		return p, ErrExpired
	}

	return p, nil
}

func (a *Authority) ttl() time.Duration {
	if a.TTL == 0 {
		return DefaultTTL
	}
	return a.TTL
}

func (a *Authority) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Authority) nonce() string {
	if a.Nonce != nil {
		return a.Nonce()
	}
	return uuid.NewString()
}

// IsFormat reports whether s has the shape of a gate token: exactly one dot.
// It only disambiguates bearer credentials and is not a security check.
func IsFormat(s string) bool {
	return s != "" && strings.Count(s, separator) == 1
}

// Issue mints a token with the default TTL.
func Issue(secret string) (string, error) {
	return NewAuthority(secret).Issue()
}

// Verify checks token against secret at the current time.
func Verify(token, secret string) bool {
	return NewAuthority(secret).Verify(token)
}
