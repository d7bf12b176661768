package http

import (
	"net/http"

	"github.com/aussiebroadwan/downloadgate/pkg/gatesdk"
	"github.com/aussiebroadwan/downloadgate/pkg/httpx"
)

// writeMisconfigured reports absent configuration keys. It returns false
// when nothing is missing.
func writeMisconfigured(w http.ResponseWriter, missing []string) bool {
	if len(missing) == 0 {
		return false
	}
	httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
		Error:   "Server misconfigured",
		Missing: missing,
	})
	return true
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeInternalError(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
