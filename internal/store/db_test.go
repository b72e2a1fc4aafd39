package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "exoradio/internal/errors"
)

func openTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndFinishRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, Run{ID: "r1", Mode: "filtered", InputPath: "asu.fit", StartedAt: started}))

	got, err := s.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)
	assert.True(t, got.StartedAt.Equal(started))
	assert.True(t, got.FinishedAt.IsZero())

	finished := started.Add(2 * time.Second)
	require.NoError(t, s.FinishRun(ctx, Run{
		ID: "r1", TotalRows: 3, SelectedRows: 1, Pages: 1,
		CSVPath: "/out/a.csv", PDFPath: "/out/a.pdf",
		Status: StatusSuccess, FinishedAt: finished,
	}))

	got, err = s.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, 3, got.TotalRows)
	assert.Equal(t, 1, got.SelectedRows)
	assert.Equal(t, "/out/a.pdf", got.PDFPath)
	assert.Equal(t, "filtered", got.Mode)
	assert.True(t, got.FinishedAt.Equal(finished))
}

func TestFinishUnknownRun(t *testing.T) {
	s := openTestStore(t)
	err := s.FinishRun(context.Background(), Run{ID: "missing", Status: StatusFailed})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestGetUnknownRun(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveRun(ctx, Run{ID: id, Mode: "full", InputPath: "x.fit", StartedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveRunError(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SaveRun(ctx, Run{ID: "r1", Mode: "filtered", InputPath: "asu.fit"}))

	require.NoError(t, s.SaveRunError(ctx, "r1", "normalize", errors.New("bad value")))
	require.NoError(t, s.SaveRunError(ctx, "r1", "report", nil))

	errs, err := s.ListRunErrors(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "normalize", errs[0].Stage)
	assert.Equal(t, "bad value", errs[0].Message)
	assert.False(t, errs[0].CreatedAt.IsZero())
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(ctx, Run{ID: "kept", Mode: "full", InputPath: "x"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "kept", runs[0].ID)
}
