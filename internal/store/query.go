package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"
)

// selectEvents builds a SELECT over table with opts applied. Session
// filtering only applies to tables that carry a session_id column.
func selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	sel := builder().Select(append([]string{"sequence", "timestamp"}, cols...)...).
		From(builder().Table(table)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.SessionID != "" && slices.Contains(cols, "session_id") {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// scanEach runs sel and calls fn for every row.
func (r *eventRepo) scanEach(ctx context.Context, sel *entsql.Selector, fn func(*sql.Rows) error) error {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *eventRepo) History(ctx context.Context, opts QueryOpts) ([]Activity, error) {
	var out []Activity

	err := r.scanEach(ctx, selectEvents(PageSessionsTable.Name, opts, "session_id", "page", "source", "action"),
		func(rows *sql.Rows) error {
			var a Activity
			var page, source, action string
			if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &page, &source, &action); err != nil {
				return err
			}
			a.Kind = KindSession
			a.Summary = fmt.Sprintf("%s %s (%s)", page, action, source)
			out = append(out, a)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query page sessions: %w", err)
	}

	err = r.scanEach(ctx, selectEvents(ExplorerAnswersTable.Name, opts, "session_id", "task_id", "concept", "option", "correct", "probability"),
		func(rows *sql.Rows) error {
			var a Activity
			var taskID, option int
			var concept string
			var correct bool
			var p float64
			if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &taskID, &concept, &option, &correct, &p); err != nil {
				return err
			}
			a.Kind = KindAnswer
			a.Summary = fmt.Sprintf("task %d (%s) option %c %s, predicted %.1f%%",
				taskID, concept, 'A'+rune(option), verdict(correct), p*100)
			out = append(out, a)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query explorer answers: %w", err)
	}

	err = r.scanEach(ctx, selectEvents(SimulatorResponsesTable.Name, opts, "session_id", "practice", "correct", "probability"),
		func(rows *sql.Rows) error {
			var a Activity
			var practice int
			var correct bool
			var p float64
			if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &practice, &correct, &p); err != nil {
				return err
			}
			a.Kind = KindResponse
			a.Summary = fmt.Sprintf("practice %d %s, predicted %.1f%%", practice, verdict(correct), p*100)
			out = append(out, a)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query simulator responses: %w", err)
	}

	err = r.scanEach(ctx, selectEvents(ParamChangesTable.Name, opts, "session_id", "param", "value"),
		func(rows *sql.Rows) error {
			var a Activity
			var param string
			var value float64
			if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &param, &value); err != nil {
				return err
			}
			a.Kind = KindParam
			a.Summary = fmt.Sprintf("%s set to %.2f", param, value)
			out = append(out, a)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query param changes: %w", err)
	}

	slices.SortFunc(out, func(a, b Activity) int {
		switch {
		case a.Sequence > b.Sequence:
			return -1
		case a.Sequence < b.Sequence:
			return 1
		}
		return 0
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func verdict(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}

func (r *eventRepo) LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var out []LLMRequestEvent
	sel := selectEvents(LlmRequestsTable.Name, opts,
		"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message")
	err := r.scanEach(ctx, sel, func(rows *sql.Rows) error {
		var e LLMRequestEvent
		var errMsg sql.NullString
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &errMsg); err != nil {
			return err
		}
		e.ErrorMessage = errMsg.String
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	return out, nil
}

func (r *eventRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{Sessions: make(map[string]int)}

	sel := builder().Select("page", "COUNT(*)").
		From(builder().Table(PageSessionsTable.Name)).
		Where(entsql.EQ("action", ActionStart)).
		GroupBy("page")
	err := r.scanEach(ctx, sel, func(rows *sql.Rows) error {
		var page string
		var n int
		if err := rows.Scan(&page, &n); err != nil {
			return err
		}
		st.Sessions[page] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	sel = builder().Select("concept", "COUNT(*)", "COALESCE(SUM(correct), 0)").
		From(builder().Table(ExplorerAnswersTable.Name)).
		GroupBy("concept").
		OrderBy("concept")
	err = r.scanEach(ctx, sel, func(rows *sql.Rows) error {
		var cs ConceptStats
		if err := rows.Scan(&cs.Concept, &cs.Answers, &cs.Correct); err != nil {
			return err
		}
		st.Concepts = append(st.Concepts, cs)
		st.ExplorerAnswers += cs.Answers
		st.ExplorerCorrect += cs.Correct
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate explorer answers: %w", err)
	}

	if err := r.aggregate(ctx, SimulatorResponsesTable.Name,
		[]string{"COUNT(*)", "COALESCE(SUM(correct), 0)"},
		&st.SimulatorResponses, &st.SimulatorCorrect); err != nil {
		return nil, fmt.Errorf("aggregate simulator responses: %w", err)
	}
	if err := r.aggregate(ctx, ParamChangesTable.Name, []string{"COUNT(*)"}, &st.ParamChanges); err != nil {
		return nil, fmt.Errorf("count param changes: %w", err)
	}
	if err := r.aggregate(ctx, LlmRequestsTable.Name,
		[]string{"COUNT(*)", "COALESCE(SUM(input_tokens), 0)", "COALESCE(SUM(output_tokens), 0)"},
		&st.LLMRequests, &st.LLMInputTokens, &st.LLMOutputTokens); err != nil {
		return nil, fmt.Errorf("aggregate LLM requests: %w", err)
	}
	return st, nil
}

// aggregate reads a single row of aggregate expressions from table.
func (r *eventRepo) aggregate(ctx context.Context, table string, exprs []string, dests ...any) error {
	query, args := builder().Select(exprs...).From(builder().Table(table)).Query()
	return r.db.QueryRowContext(ctx, query, args...).Scan(dests...)
}
