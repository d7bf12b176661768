package http

import (
	"net/http"

	"github.com/aussiebroadwan/downloadgate/internal/gate/metrics"
	"github.com/aussiebroadwan/downloadgate/internal/gate/service"
	"github.com/aussiebroadwan/downloadgate/pkg/gatesdk"
	"github.com/aussiebroadwan/downloadgate/pkg/httpx"
)

// DownloadsHandler reads and increments the public download counter.
type DownloadsHandler struct {
	Telemetry *service.TelemetryService
	Metrics   *metrics.Metrics

	// Missing lists absent data store configuration keys.
	Missing []string
}

func (h *DownloadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if writeMisconfigured(w, h.Missing) {
		return
	}

	if r.Method == http.MethodPost {
		h.HandleRecord(w, r)
		return
	}
	h.HandleCount(w, r)
}

// HandleCount godoc
//
//	@Summary		Download Count
//	@Description	Returns the total number of recorded downloads.
//	@Tags			Telemetry
//	@Produce		json
//	@Success		200	{object}	gatesdk.DownloadsResponse	"success, downloads"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"misconfiguration or internal error"
//	@Router			/downloads [get].
func (h *DownloadsHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.Telemetry.Count(r.Context())
	if err != nil {
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.DownloadsResponse{
		Success:   true,
		Downloads: total,
	})
}

// HandleRecord godoc
//
//	@Summary		Record Download
//	@Description	Counts one download and stores an anonymized log entry (hashed client address and user agent).
//	@Tags			Telemetry
//	@Produce		json
//	@Success		200	{object}	gatesdk.DownloadsResponse	"success, downloads"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"misconfiguration or internal error"
//	@Router			/downloads [post].
func (h *DownloadsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	total, err := h.Telemetry.Record(r.Context(), httpx.ClientIP(r), httpx.UserAgent(r))
	if err != nil {
		h.Metrics.Download(metrics.OutcomeError)
		writeInternalError(w)
		return
	}

	h.Metrics.Download(metrics.OutcomeRecorded)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.DownloadsResponse{
		Success:   true,
		Downloads: total,
	})
}
