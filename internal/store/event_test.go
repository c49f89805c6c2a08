package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivity(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.AppendPageSession(ctx, PageSessionEventData{
		SessionID: "e1", Page: PageExplorer, Source: SourceTUI, Action: ActionStart,
	}))
	require.NoError(t, repo.AppendExplorerAnswer(ctx, ExplorerAnswerEventData{
		SessionID: "e1", TaskID: 1, Concept: "variables", Option: 0, Correct: true,
		Probability: 0.43, Ability: 0.1, Opportunities: 1,
	}))
	require.NoError(t, repo.AppendExplorerAnswer(ctx, ExplorerAnswerEventData{
		SessionID: "e1", TaskID: 2, Concept: "variables", Option: 1, Correct: false,
		Probability: 0.55, Ability: 0.1, Opportunities: 2,
	}))
	require.NoError(t, repo.AppendExplorerAnswer(ctx, ExplorerAnswerEventData{
		SessionID: "e1", TaskID: 3, Concept: "loops", Option: 1, Correct: true,
		Probability: 0.33, Ability: 0.2, Opportunities: 1,
	}))
	require.NoError(t, repo.AppendPageSession(ctx, PageSessionEventData{
		SessionID: "s1", Page: PageSimulator, Source: SourceHTTP, Action: ActionStart,
	}))
	require.NoError(t, repo.AppendParamChange(ctx, ParamChangeEventData{
		SessionID: "s1", Param: "theta", Value: 0.5,
	}))
	require.NoError(t, repo.AppendSimulatorResponse(ctx, SimulatorResponseEventData{
		SessionID: "s1", Practice: 5, Correct: true, Probability: 0.88,
		Theta: 0.6, Beta: 0, Gamma: 0.3,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-v1", Purpose: "coach",
		InputTokens: 120, OutputTokens: 40, LatencyMs: 15, Success: true,
	}))
}

func TestHistory_MergedNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedActivity(t, repo)

	hist, err := repo.History(context.Background(), QueryOpts{})
	require.NoError(t, err)
	require.Len(t, hist, 7)

	for i := 1; i < len(hist); i++ {
		assert.Greater(t, hist[i-1].Sequence, hist[i].Sequence)
	}
	assert.Equal(t, KindResponse, hist[0].Kind)
	assert.Equal(t, "practice 5 correct, predicted 88.0%", hist[0].Summary)
	assert.Equal(t, KindParam, hist[1].Kind)
	assert.Equal(t, KindSession, hist[6].Kind)
	assert.Equal(t, "explorer start (tui)", hist[6].Summary)
	assert.False(t, hist[0].Timestamp.IsZero())
}

func TestHistory_Filters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedActivity(t, repo)
	ctx := context.Background()

	hist, err := repo.History(ctx, QueryOpts{SessionID: "e1"})
	require.NoError(t, err)
	assert.Len(t, hist, 4)
	assert.Equal(t, "task 3 (loops) option B correct, predicted 33.0%", hist[0].Summary)

	hist, err = repo.History(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	hist, err = repo.History(ctx, QueryOpts{After: 5})
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedActivity(t, repo)

	st, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, st.Sessions[PageExplorer])
	assert.Equal(t, 1, st.Sessions[PageSimulator])
	assert.Equal(t, 3, st.ExplorerAnswers)
	assert.Equal(t, 2, st.ExplorerCorrect)
	assert.Equal(t, []ConceptStats{
		{Concept: "loops", Answers: 1, Correct: 1},
		{Concept: "variables", Answers: 2, Correct: 1},
	}, st.Concepts)
	assert.Equal(t, 1, st.SimulatorResponses)
	assert.Equal(t, 1, st.SimulatorCorrect)
	assert.Equal(t, 1, st.ParamChanges)
	assert.Equal(t, 1, st.LLMRequests)
	assert.Equal(t, 120, st.LLMInputTokens)
	assert.Equal(t, 40, st.LLMOutputTokens)
}

func TestStats_Empty(t *testing.T) {
	s := openTestStore(t)
	st, err := s.EventRepo().Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.ExplorerAnswers)
	assert.Zero(t, st.SimulatorCorrect)
	assert.Empty(t, st.Sessions)
}

func TestLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedActivity(t, repo)

	reqs, err := repo.LLMRequests(context.Background(), QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "mock", reqs[0].Provider)
	assert.Equal(t, "coach", reqs[0].Purpose)
	assert.True(t, reqs[0].Success)
	assert.Empty(t, reqs[0].ErrorMessage)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedActivity(t, repo)
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx))

	hist, err := repo.History(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, hist)

	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}
