package gatetoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode reports input that is not valid base64url.
var ErrDecode = errors.New("gatetoken: invalid base64url")

var urlToStd = strings.NewReplacer("-", "+", "_", "/")

// Encode returns the URL-safe base64 form of b without padding.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reverses Encode. Padding is restored before decoding, so both padded
// and unpadded inputs are accepted.
func Decode(s string) ([]byte, error) {
	std := urlToStd.Replace(s)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}

	b, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}
