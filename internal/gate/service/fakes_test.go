package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
)

var errStoreDown = errors.New("store down")

type fakeVerifier struct {
	calls  atomic.Int32
	ok     bool
	err    error
	secret string
	proof  string
	ip     string
}

func (f *fakeVerifier) Verify(_ context.Context, secret, response, remoteIP string) (bool, error) {
	f.calls.Add(1)
	f.secret, f.proof, f.ip = secret, response, remoteIP
	return f.ok, f.err
}

type fakeCatalog struct {
	entries []domain.CatalogEntry
	err     error
	delay   time.Duration
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]domain.CatalogEntry, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.entries, f.err
}

type fakeCounter struct {
	mu    sync.Mutex
	total int64
	err   error
}

func (f *fakeCounter) Read(context.Context) (domain.DownloadStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.DownloadStats{}, f.err
	}
	return domain.DownloadStats{ID: "fake", TotalDownloads: f.total}, nil
}

func (f *fakeCounter) Increment(context.Context) (domain.DownloadStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.DownloadStats{}, f.err
	}
	f.total++
	now := time.Now()
	return domain.DownloadStats{ID: "fake", TotalDownloads: f.total, LastUpdated: &now}, nil
}

type fakeLogs struct {
	mu      sync.Mutex
	entries []domain.DownloadLog
	err     error
}

func (f *fakeLogs) Append(_ context.Context, l domain.DownloadLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, l)
	return nil
}
