package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/downloadgate/pkg/gatesdk"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
)

// CredentialExtractor pulls a candidate gate token from a request. It
// returns "" when its source is absent.
type CredentialExtractor func(*http.Request) string

// DefaultExtractors is the lookup order for gate credentials. The first
// non-empty value wins.
var DefaultExtractors = []CredentialExtractor{
	FromGateHeader,
	FromGateQuery,
	FromBearer,
}

// FromGateHeader reads the X-Download-Gate header.
func FromGateHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(gatesdk.GateHeader))
}

// FromGateQuery reads the ?gate= query parameter.
func FromGateQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("gate"))
}

// FromBearer reads an Authorization bearer credential, but only when it has
// the gate token shape. Other bearer values (for example platform API keys
// sent by the browser client) are ignored.
func FromBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	token = strings.TrimSpace(token)
	if !gatetoken.IsFormat(token) {
		return ""
	}
	return token
}

// ExtractCredential returns the first non-empty credential found by
// extractors.
func ExtractCredential(r *http.Request, extractors []CredentialExtractor) string {
	for _, extract := range extractors {
		if v := extract(r); v != "" {
			return v
		}
	}
	return ""
}
