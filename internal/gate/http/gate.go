package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/downloadgate/internal/gate/metrics"
	"github.com/aussiebroadwan/downloadgate/internal/gate/service"
	"github.com/aussiebroadwan/downloadgate/pkg/gatesdk"
	"github.com/aussiebroadwan/downloadgate/pkg/httpx"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"
)

const maxIssueBody = 16 << 10

// GateHandler issues gate tokens on POST and serves the catalog on GET.
type GateHandler struct {
	Human   *service.HumanGateway
	Catalog *service.CatalogService
	Metrics *metrics.Metrics

	// Missing lists required configuration keys that are absent. When
	// non-empty every request is answered with a 500 naming them.
	Missing []string

	// Extractors defaults to DefaultExtractors.
	Extractors []CredentialExtractor
}

func (h *GateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if writeMisconfigured(w, h.Missing) {
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.HandleIssue(w, r)
	case http.MethodGet:
		h.HandleCatalog(w, r)
	default:
		writeMethodNotAllowed(w)
	}
}

// HandleIssue godoc
//
//	@Summary		Issue Gate Token
//	@Description	Verifies a captcha response and issues a short-lived gate token for reading the catalog.
//	@Description	When captcha bypass is enabled the check is skipped and the response carries bypass=true.
//	@Tags			Gate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.IssueRequest	false	"captcha response"
//	@Success		200		{object}	gatesdk.IssueResponse	"success, gateToken, bypass"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Missing captcha token"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"reCAPTCHA verification failed"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"misconfiguration or internal error"
//	@Router			/gate [post].
func (h *GateHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.IssueRequest
	if body, err := io.ReadAll(io.LimitReader(r.Body, maxIssueBody)); err == nil {
		// An unparsable body is treated as an empty one.
		_ = json.Unmarshal(body, &req)
	}

	result, err := h.Human.VerifyHuman(ctx, req.CaptchaToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProof):
			h.Metrics.GateToken(metrics.OutcomeMissing)
			bypass := h.Human.Bypass
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:         "Missing captcha token",
				BypassEnabled: &bypass,
			})
		case errors.Is(err, service.ErrCaptchaNotConfigured):
			h.Metrics.GateToken(metrics.OutcomeError)
			httpx.WriteError(w, http.StatusInternalServerError, "reCAPTCHA secret not configured")
		case errors.Is(err, service.ErrHumanCheckFailed):
			h.Metrics.GateToken(metrics.OutcomeRejected)
			httpx.WriteError(w, http.StatusUnauthorized, "reCAPTCHA verification failed")
		default:
			h.Metrics.GateToken(metrics.OutcomeError)
			writeInternalError(w)
		}
		return
	}

	token, err := h.Catalog.IssueToken(ctx)
	if err != nil {
		h.Metrics.GateToken(metrics.OutcomeError)
		writeInternalError(w)
		return
	}

	if result.Bypassed {
		h.Metrics.GateToken(metrics.OutcomeBypassed)
	} else {
		h.Metrics.GateToken(metrics.OutcomeIssued)
	}
	log.Info("gate token issued", slog.Bool("bypass", result.Bypassed))

	httpx.WriteJSON(w, http.StatusOK, gatesdk.IssueResponse{
		Success:   true,
		GateToken: token,
		Bypass:    result.Bypassed,
	})
}

// HandleCatalog godoc
//
//	@Summary		Read Download Catalog
//	@Description	Returns the active catalog entries to the holder of a valid gate token.
//	@Description	The token is read from the X-Download-Gate header, then the gate query parameter, then an Authorization bearer value shaped like a gate token.
//	@Tags			Gate
//	@Produce		json
//	@Param			X-Download-Gate	header		string					false	"gate token"
//	@Param			gate			query		string					false	"gate token"
//	@Success		200				{object}	gatesdk.CatalogResponse	"success, data"
//	@Failure		401				{object}	gatesdk.ErrorResponse	"missing, invalid or expired gate token"
//	@Failure		500				{object}	gatesdk.ErrorResponse	"misconfiguration or internal error"
//	@Security		GateToken
//	@Router			/gate [get].
func (h *GateHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	extractors := h.Extractors
	if extractors == nil {
		extractors = DefaultExtractors
	}

	token := ExtractCredential(r, extractors)
	if token == "" {
		h.Metrics.CatalogRequest(metrics.OutcomeDenied)
		httpx.WriteError(w, http.StatusUnauthorized, "Missing gate token")
		return
	}

	if !h.Catalog.CheckToken(ctx, token) {
		h.Metrics.CatalogRequest(metrics.OutcomeDenied)
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired gate token")
		return
	}

	entries, err := h.Catalog.ListCatalog(ctx)
	if err != nil {
		h.Metrics.CatalogRequest(metrics.OutcomeError)
		writeInternalError(w)
		return
	}

	data := make([]gatesdk.CatalogEntry, len(entries))
	for i, e := range entries {
		data[i] = gatesdk.CatalogEntry(e)
	}

	h.Metrics.CatalogRequest(metrics.OutcomeGranted)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.CatalogResponse{
		Success: true,
		Data:    data,
	})
}
