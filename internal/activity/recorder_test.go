package activity

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/simulator"
	"github.com/abhisek/afmlab/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecorder_ExplorerFlow(t *testing.T) {
	st := openStore(t)
	rec := NewRecorder(st.EventRepo(), st.SnapshotRepo(), store.SourceTUI)
	ctx := context.Background()

	id := rec.StartPage(ctx, store.PageExplorer)
	require.NotEmpty(t, id)

	before := explorer.New()
	after := before.SelectAnswer(0)
	rec.ExplorerAnswer(ctx, id, before, after)
	// Re-answering is a no-op transition and must not be recorded.
	rec.ExplorerAnswer(ctx, id, after, after.SelectAnswer(1))
	next := after.NextTask()
	rec.ExplorerAnswer(ctx, id, after, next)

	rec.SaveSnapshot(ctx, id, store.PageExplorer, next.Snapshot())
	rec.EndPage(ctx, id, store.PageExplorer)

	stats, err := st.EventRepo().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sessions[store.PageExplorer])
	assert.Equal(t, 1, stats.ExplorerAnswers)
	assert.Equal(t, 1, stats.ExplorerCorrect)

	history, err := st.EventRepo().History(ctx, store.QueryOpts{SessionID: id})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "explorer end (tui)", history[0].Summary)
	assert.Equal(t, store.KindAnswer, history[1].Kind)
	assert.Contains(t, history[1].Summary, "predicted 42.6%")

	snap, err := st.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, id, snap.Data.SessionID)
	assert.Equal(t, SnapshotVersion, snap.Data.Version)
	assert.EqualValues(t, 1, snap.Data.State["task_index"])
}

func TestRecorder_SimulatorFlow(t *testing.T) {
	st := openStore(t)
	rec := NewRecorder(st.EventRepo(), nil, store.SourceHTTP)
	ctx := context.Background()

	id := rec.StartPage(ctx, store.PageSimulator)
	s := simulator.New().SetTheta(0.5)
	rec.ParamChange(ctx, id, simulator.ParamTheta, s)
	s, _ = s.SimulateResponse(true)
	rec.SimulatorResponse(ctx, id, s)
	rec.SaveSnapshot(ctx, id, store.PageSimulator, s.Snapshot(nil, time.Now()))

	history, err := st.EventRepo().History(ctx, store.QueryOpts{SessionID: id})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, store.KindResponse, history[0].Kind)
	assert.Equal(t, "theta set to 0.50", history[1].Summary)
	assert.Equal(t, "simulator start (http)", history[2].Summary)
}

func TestRecorder_Disabled(t *testing.T) {
	rec := Disabled()
	ctx := context.Background()

	id := rec.StartPage(ctx, store.PageExplorer)
	assert.NotEmpty(t, id)
	rec.ExplorerAnswer(ctx, id, explorer.New(), explorer.New().SelectAnswer(0))
	rec.SimulatorResponse(ctx, id, simulator.New())
	rec.SaveSnapshot(ctx, id, store.PageExplorer, explorer.New().Snapshot())
	rec.EndPage(ctx, id, store.PageExplorer)
}

func TestRecorder_WarnsOnFailure(t *testing.T) {
	st := openStore(t)
	rec := NewRecorder(st.EventRepo(), nil, store.SourceTUI)
	var warn bytes.Buffer
	rec.Warn = &warn

	require.NoError(t, st.Close())
	rec.StartPage(context.Background(), store.PageExplorer)
	assert.Contains(t, warn.String(), "failed to record page session")
}
