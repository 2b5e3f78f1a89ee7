package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleRun() RunRecord {
	return RunRecord{
		Label:         "scene42",
		EmissivityB10: 0.97,
		EmissivityB11: 0.98,
		CWV:           1.5,
		Subrange:      "Range_1",
		T10:           300.0,
		T11:           295.0,
		LST:           12.167,
		RMSE:          0.34,
	}
}

func TestSQLite_SaveAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := st.SaveRun(ctx, sampleRun())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := st.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "scene42", got.Label)
	assert.Equal(t, "Range_1", got.Subrange)
	assert.InDelta(t, 0.97, got.EmissivityB10, 1e-12)
	assert.InDelta(t, 12.167, got.LST, 1e-12)
	assert.InDelta(t, 0.34, got.RMSE, 1e-12)
}

func TestSQLite_GetRun_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRuns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := sampleRun()
		rec.T10 = 300.0 + float64(i)
		_, err := st.SaveRun(ctx, rec)
		require.NoError(t, err)
	}

	all, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	limited, err := st.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLite_ListRuns_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}
