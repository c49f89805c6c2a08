package history

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/afmlab/internal/router"
	"github.com/abhisek/afmlab/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	repo := st.EventRepo()
	require.NoError(t, repo.AppendPageSession(ctx, store.PageSessionEventData{
		SessionID: "explorer-1", Page: store.PageExplorer, Source: store.SourceTUI, Action: store.ActionStart,
	}))
	require.NoError(t, repo.AppendExplorerAnswer(ctx, store.ExplorerAnswerEventData{
		SessionID: "explorer-1", TaskID: 1, Concept: "variables", Option: 1, Correct: true, Probability: 0.426,
	}))
	require.NoError(t, repo.AppendPageSession(ctx, store.PageSessionEventData{
		SessionID: "sim-1", Page: store.PageSimulator, Source: store.SourceTUI, Action: store.ActionStart,
	}))
	require.NoError(t, repo.AppendParamChange(ctx, store.ParamChangeEventData{
		SessionID: "sim-1", Param: "theta", Value: 0.5,
	}))
	return repo
}

func TestHistory_GroupsBySession(t *testing.T) {
	s := New(seededRepo(t))
	s.Update(s.Init()())

	require.True(t, s.loaded)
	require.Len(t, s.sessions, 2)
	assert.Equal(t, "sim-1", s.sessions[0].ID, "newest session first")
	assert.Equal(t, "simulator start (tui)", s.sessions[0].Header.Summary)
	assert.Len(t, s.sessions[1].Events, 1)
}

func TestHistory_ExpandShowsEvents(t *testing.T) {
	s := New(seededRepo(t))
	s.Update(s.Init()())

	assert.NotContains(t, s.View(100, 30), "theta set to 0.50")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 30), "theta set to 0.50")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 30), "predicted 42.6%")
}

func TestHistory_Empty(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(st.EventRepo())
	s.Update(s.Init()())
	assert.Contains(t, s.View(100, 30), "No sessions yet")
}

func TestHistory_EscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
