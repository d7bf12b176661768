package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
)

func TestTelemetryCount(t *testing.T) {
	svc := &TelemetryService{Counter: &fakeCounter{total: 7}, Logs: &fakeLogs{}}

	n, err := svc.Count(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, 7, n)

	svc.Counter = &fakeCounter{err: errStoreDown}
	_, err = svc.Count(t.Context())
	require.ErrorIs(t, err, errStoreDown)
}

func TestTelemetryRecord(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	logs := &fakeLogs{}
	anon := cryptox.MustNewAnonymizer("pepper")
	svc := &TelemetryService{
		Counter:    &fakeCounter{total: 41},
		Logs:       logs,
		Anonymizer: anon,
		Now:        func() time.Time { return at },
	}

	n, err := svc.Record(t.Context(), "198.51.100.7", "Mozilla/5.0")
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	require.Equal(t, anon.HashIP("198.51.100.7"), entry.IPHash)
	require.NotContains(t, entry.IPHash, "198.51.100.7")
	require.Equal(t, "Mozilla/5.0", entry.UserAgent)
	require.Equal(t, at, entry.DownloadedAt)
}

func TestTelemetryRecordSwallowsLogFailure(t *testing.T) {
	svc := &TelemetryService{
		Counter: &fakeCounter{},
		Logs:    &fakeLogs{err: errStoreDown},
	}

	n, err := svc.Record(t.Context(), "unknown", "unknown")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestTelemetryRecordCounterFailure(t *testing.T) {
	logs := &fakeLogs{}
	svc := &TelemetryService{
		Counter: &fakeCounter{err: errStoreDown},
		Logs:    logs,
	}

	_, err := svc.Record(t.Context(), "unknown", "unknown")
	require.ErrorIs(t, err, errStoreDown)
	require.Empty(t, logs.entries)
}

func TestTelemetryRecordConcurrent(t *testing.T) {
	counter := &fakeCounter{}
	logs := &fakeLogs{}
	svc := &TelemetryService{Counter: counter, Logs: logs}

	const n = 64
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(t.Context(), "203.0.113.1", "ua")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	total, err := svc.Count(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, n, total)
	require.Len(t, logs.entries, n)
}
