package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/internal/gate/metrics"
	"github.com/aussiebroadwan/downloadgate/internal/gate/service"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store/drivers/sqlite"
	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
)

const testSecret = "test-gate-secret"

var errBoom = errors.New("boom")

type fakeVerifier struct {
	calls atomic.Int32
	ok    bool
	err   error
}

func (f *fakeVerifier) Verify(context.Context, string, string, string) (bool, error) {
	f.calls.Add(1)
	return f.ok, f.err
}

type fakeCatalog struct {
	entries []domain.CatalogEntry
	err     error
}

func (f *fakeCatalog) ListActive(context.Context) ([]domain.CatalogEntry, error) {
	return f.entries, f.err
}

type fakeCounter struct {
	err error
}

func (f *fakeCounter) Read(context.Context) (domain.DownloadStats, error) {
	return domain.DownloadStats{}, f.err
}

func (f *fakeCounter) Increment(context.Context) (domain.DownloadStats, error) {
	return domain.DownloadStats{}, f.err
}

// clock is a settable time source for token expiry tests.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type testEnv struct {
	router    *Router
	verifier  *fakeVerifier
	catalog   *fakeCatalog
	authority *gatetoken.Authority
	human     *service.HumanGateway
	store     *sqlite.Store
	logs      *strings.Builder
	logsMu    *sync.Mutex
}

type lockedWriter struct {
	mu *sync.Mutex
	b  *strings.Builder
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func newTestEnv(t *testing.T, opts ...func(*testEnv)) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	env := &testEnv{
		verifier: &fakeVerifier{ok: true},
		catalog: &fakeCatalog{entries: []domain.CatalogEntry{
			{ID: "v2-64", Version: "2.0.0", FileName: "app-x64.zip", Architecture: domain.Arch64, DownloadURL: "https://cdn.example/x64", SortOrder: 1, IsActive: true},
			{ID: "v2-32", Version: "2.0.0", FileName: "app-x86.zip", Architecture: domain.Arch32, DownloadURL: "https://cdn.example/x86", SortOrder: 2, IsActive: true},
		}},
		authority: gatetoken.NewAuthority(testSecret),
		store:     st,
		logs:      &strings.Builder{},
		logsMu:    &sync.Mutex{},
	}
	env.human = &service.HumanGateway{Verifier: env.verifier, Secret: "captcha-secret"}

	logger := slog.New(slog.NewJSONHandler(lockedWriter{mu: env.logsMu, b: env.logs}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := NewRouter("test", metrics.New(), logger)
	r.HumanGateway = env.human
	r.CatalogService = &service.CatalogService{Authority: env.authority, Catalog: env.catalog}
	r.TelemetryService = &service.TelemetryService{
		Counter:    st.Counter(),
		Logs:       st.DownloadLogs(),
		Anonymizer: cryptox.MustNewAnonymizer("salt"),
	}
	r.Database = st
	env.router = r

	for _, opt := range opts {
		opt(env)
	}
	r.ApplyRoutes()
	return env
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) logOutput() string {
	e.logsMu.Lock()
	defer e.logsMu.Unlock()
	return e.logs.String()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) map[string]any {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, msg, body["error"])
	return body
}
