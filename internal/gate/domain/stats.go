package domain

import "time"

// DownloadStats is the single logical counter row.
type DownloadStats struct {
	ID             string
	TotalDownloads int64
	LastUpdated    *time.Time
	CreatedAt      time.Time
}

// DownloadLog is an append-only, anonymized record of one download. IPHash
// is the hex digest of the client address; the raw address is never stored.
type DownloadLog struct {
	ID           string
	IPHash       string
	UserAgent    string
	DownloadedAt time.Time
}
