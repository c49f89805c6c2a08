package store

import "context"

func (r *eventRepo) AppendPageSession(ctx context.Context, data PageSessionEventData) error {
	return r.insert(ctx, PageSessionsTable.Name,
		[]string{"session_id", "page", "source", "action"},
		data.SessionID, data.Page, data.Source, data.Action,
	)
}

func (r *eventRepo) AppendExplorerAnswer(ctx context.Context, data ExplorerAnswerEventData) error {
	return r.insert(ctx, ExplorerAnswersTable.Name,
		[]string{"session_id", "task_id", "concept", "option", "correct", "probability", "ability", "opportunities"},
		data.SessionID, data.TaskID, data.Concept, data.Option, data.Correct,
		data.Probability, data.Ability, data.Opportunities,
	)
}

func (r *eventRepo) AppendSimulatorResponse(ctx context.Context, data SimulatorResponseEventData) error {
	return r.insert(ctx, SimulatorResponsesTable.Name,
		[]string{"session_id", "practice", "correct", "probability", "theta", "beta", "gamma"},
		data.SessionID, data.Practice, data.Correct, data.Probability,
		data.Theta, data.Beta, data.Gamma,
	)
}

func (r *eventRepo) AppendParamChange(ctx context.Context, data ParamChangeEventData) error {
	return r.insert(ctx, ParamChangesTable.Name,
		[]string{"session_id", "param", "value"},
		data.SessionID, data.Param, data.Value,
	)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, LlmRequestsTable.Name,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage,
	)
}
