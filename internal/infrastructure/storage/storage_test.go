package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveRunAndStats(t *testing.T) {
	s := newTestStorage(t)

	started := time.Now().Add(-time.Minute)
	for i := 0; i < 2; i++ {
		run := &RunRecord{
			RunID:      uuid.NewString(),
			StartedAt:  started,
			FinishedAt: time.Now(),
			LedgerRows: 100,
			Documents:  10,
			Assigned:   8,
			Unassigned: 2,
			Status:     "success",
		}
		require.NoError(t, s.SaveRun(run))
		assert.NotZero(t, run.ID)
	}

	stats, err := s.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 20, stats.TotalDocuments)
	assert.Equal(t, 16, stats.TotalAssigned)
	assert.Equal(t, 4, stats.TotalUnassigned)
}

func TestSaveMatchRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	runID := uuid.NewString()

	require.NoError(t, s.SaveMatch(&MatchRecord{
		RunID:       runID,
		Document:    "receipt-1.pdf",
		ReceiptID:   "REC-2023-07000001",
		LedgerIndex: 42,
		Signals:     []string{"date", "amount", "invoice_number"},
	}))
	require.NoError(t, s.SaveMatch(&MatchRecord{
		RunID:     runID,
		Document:  "receipt-2.pdf",
		ReceiptID: "REC-2023-07000002",
		ByHint:    true,
	}))

	matches, err := s.MatchesForRun(runID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"date", "amount", "invoice_number"}, matches[0].Signals)
	assert.Equal(t, 42, matches[0].LedgerIndex)
	assert.Empty(t, matches[1].Signals)
	assert.True(t, matches[1].ByHint)

	other, err := s.MatchesForRun(uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening must not re-run applied migrations.
	s, err = NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
