package domain

// Architectures a catalog entry can target.
const (
	Arch32 = "32-bit"
	Arch64 = "64-bit"
)

// CatalogEntry is one downloadable build. Rows are owned by the admin
// tooling; this service only reads active rows.
type CatalogEntry struct {
	ID           string `json:"id"`
	Version      string `json:"version"`
	FileName     string `json:"file_name"`
	Architecture string `json:"architecture"`
	DownloadURL  string `json:"download_url"`
	SortOrder    int    `json:"sort_order"`
	IsActive     bool   `json:"is_active"`
}
