package httpx

import (
	"net/http"
	"strings"
)

// UnknownClient is reported when no client address or user agent is known.
const UnknownClient = "unknown"

// ClientIP extracts the client address as forwarded by the edge proxy: the
// first X-Forwarded-For entry, then X-Real-IP, then UnknownClient.
// RemoteAddr is not consulted.
func ClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (comma-separated list)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	// Check X-Real-IP header
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return UnknownClient
}

// UserAgent returns the request's User-Agent or UnknownClient.
func UserAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return UnknownClient
}
