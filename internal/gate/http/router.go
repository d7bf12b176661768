package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/metrics"
	"github.com/aussiebroadwan/downloadgate/internal/gate/service"
	"github.com/aussiebroadwan/downloadgate/pkg/gatesdk"
	"github.com/aussiebroadwan/downloadgate/pkg/httpx"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"

	_ "github.com/aussiebroadwan/downloadgate/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Legacy function paths kept for clients built against the edge functions.
const (
	LegacyGatePath      = "/functions/v1/download-catalog"
	LegacyDownloadsPath = "/functions/v1/track-download"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	// GateMissing and StoreMissing list absent configuration keys for the
	// gate and telemetry endpoints respectively.
	GateMissing  []string
	StoreMissing []string

	// Database and Counter are pinged by /readyz. Counter is only set when
	// the redis counter is in use.
	Database Pinger
	Counter  Pinger

	HumanGateway     *service.HumanGateway
	CatalogService   *service.CatalogService
	TelemetryService *service.TelemetryService
}

func NewRouter(buildVersion string, m *metrics.Metrics, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      m,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(r.reportPanic),
		httpx.CORS(httpx.GateCORS),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGate()
	r.registerDownloads()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Download Gate API
//	@version					0.1.0
//	@description				Captcha-gated access to the download catalog and public download telemetry.
//	@description
//	@description				A gate token is obtained with POST /gate and is valid for ten minutes.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/downloadgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	GateToken
//	@in							header
//	@name						X-Download-Gate
//	@description				Gate token issued by POST /gate.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGate() {
	h := r.instrument(gatesdk.GatePath, &GateHandler{
		Human:   r.HumanGateway,
		Catalog: r.CatalogService,
		Metrics: r.metrics,
		Missing: r.GateMissing,
	})

	// No method in the pattern: the handler answers other verbs with its
	// own 405 body.
	r.Mux.Handle(gatesdk.GatePath, h)
	r.Mux.Handle(LegacyGatePath, h)
}

func (r *Router) registerDownloads() {
	h := r.instrument(gatesdk.DownloadsPath, &DownloadsHandler{
		Telemetry: r.TelemetryService,
		Metrics:   r.metrics,
		Missing:   r.StoreMissing,
	})

	r.Mux.Handle(gatesdk.DownloadsPath, h)
	r.Mux.Handle(LegacyDownloadsPath, h)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))

	missing := append(append([]string{}, r.GateMissing...), r.StoreMissing...)
	r.Mux.Handle("GET /readyz",
		ReadyzHandler(r.startTime, r.buildVersion, dedupe(missing), r.Database, r.Counter),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}

func (r *Router) instrument(route string, h http.Handler) http.Handler {
	if r.metrics == nil {
		return h
	}
	return httpx.Chain(h, r.metrics.Instrument(route))
}

func (r *Router) reportPanic(req *http.Request, v any) {
	slogx.FromContext(req.Context()).Error("panic serving request",
		slog.String("panic", fmt.Sprint(v)),
		slog.String("stack", string(debug.Stack())),
	)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
