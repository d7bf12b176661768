package gatesdk

// GateHeader carries the gate token on catalog reads.
const GateHeader = "X-Download-Gate"

// Route paths served by the gate service.
const (
	GatePath      = "/gate"
	DownloadsPath = "/downloads"
)

// IssueRequest is the body of POST /gate.
type IssueRequest struct {
	CaptchaToken string `json:"captchaToken,omitempty"`
}

// IssueResponse is returned when a gate token is issued.
type IssueResponse struct {
	Success   bool   `json:"success"`
	GateToken string `json:"gateToken"`

	// Bypass is set when the captcha check was skipped by configuration.
	Bypass bool `json:"bypass,omitempty"`
}

// CatalogEntry is one downloadable build.
type CatalogEntry struct {
	ID           string `json:"id"`
	Version      string `json:"version"`
	FileName     string `json:"file_name"`
	Architecture string `json:"architecture"`
	DownloadURL  string `json:"download_url"`
	SortOrder    int    `json:"sort_order"`
	IsActive     bool   `json:"is_active"`
}

// CatalogResponse is the body of a successful GET /gate.
type CatalogResponse struct {
	Success bool           `json:"success"`
	Data    []CatalogEntry `json:"data"`
}

// DownloadsResponse is the body of GET and POST /downloads.
type DownloadsResponse struct {
	Success   bool  `json:"success"`
	Downloads int64 `json:"downloads"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`

	// Missing lists absent configuration keys on "Server misconfigured".
	Missing []string `json:"missing,omitempty"`

	// BypassEnabled is reported alongside "Missing captcha token".
	BypassEnabled *bool `json:"bypassEnabled,omitempty"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency in /readyz.
type HealthChecks struct {
	Config   string `json:"config"`
	Database string `json:"database"`
	Counter  string `json:"counter,omitempty"`
}
