// Package activity turns page transitions into activity-log events.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/simulator"
	"github.com/abhisek/afmlab/internal/store"
)

// SnapshotVersion is the layout version of saved page snapshots.
const SnapshotVersion = 1

// KeepSnapshots is how many page snapshots survive a prune.
const KeepSnapshots = 20

// writeTimeout bounds a single store write.
const writeTimeout = 5 * time.Second

// Recorder appends page activity to the store. A Recorder with nil repos
// records nothing, so pages work without a database. Write failures are
// reported to Warn and never returned.
type Recorder struct {
	events    store.EventRepo
	snapshots store.SnapshotRepo
	source    string

	// Warn receives write failures. Defaults to stderr.
	Warn io.Writer
}

// NewRecorder creates a Recorder tagging sessions with source
// (store.SourceTUI or store.SourceHTTP). Either repo may be nil.
func NewRecorder(events store.EventRepo, snapshots store.SnapshotRepo, source string) *Recorder {
	return &Recorder{events: events, snapshots: snapshots, source: source, Warn: os.Stderr}
}

// Disabled returns a Recorder that records nothing.
func Disabled() *Recorder {
	return NewRecorder(nil, nil, "")
}

// StartPage records a page being opened and returns the new session id.
func (r *Recorder) StartPage(ctx context.Context, page string) string {
	id := uuid.NewString()
	r.pageSession(ctx, id, page, store.ActionStart)
	return id
}

// EndPage records a page being closed.
func (r *Recorder) EndPage(ctx context.Context, sessionID, page string) {
	r.pageSession(ctx, sessionID, page, store.ActionEnd)
}

func (r *Recorder) pageSession(ctx context.Context, id, page, action string) {
	if r.events == nil {
		return
	}
	r.write(ctx, "page session", func(ctx context.Context) error {
		return r.events.AppendPageSession(ctx, store.PageSessionEventData{
			SessionID: id,
			Page:      page,
			Source:    r.source,
			Action:    action,
		})
	})
}

// ExplorerAnswer records the transition from before to after when it
// answered a task. Other transitions are ignored.
func (r *Recorder) ExplorerAnswer(ctx context.Context, sessionID string, before, after explorer.State) {
	if r.events == nil || before.Answered || !after.Answered {
		return
	}
	t, ok := after.CurrentTask()
	if !ok {
		return
	}
	data := store.ExplorerAnswerEventData{
		SessionID:     sessionID,
		TaskID:        t.ID,
		Concept:       string(t.Concept),
		Option:        after.Selected,
		Correct:       after.LastAnswerCorrect(),
		Probability:   before.Probability(),
		Ability:       after.Ability,
		Opportunities: after.Concepts[t.Concept].Opportunities,
	}
	r.write(ctx, "explorer answer", func(ctx context.Context) error {
		return r.events.AppendExplorerAnswer(ctx, data)
	})
}

// SimulatorResponse records the latest response in after's log.
func (r *Recorder) SimulatorResponse(ctx context.Context, sessionID string, after simulator.State) {
	if r.events == nil || len(after.Log) == 0 {
		return
	}
	last := after.Log[len(after.Log)-1]
	data := store.SimulatorResponseEventData{
		SessionID:   sessionID,
		Practice:    last.Practice,
		Correct:     last.Correct,
		Probability: last.Probability,
		Theta:       after.Theta,
		Beta:        after.Beta,
		Gamma:       after.Gamma,
	}
	r.write(ctx, "simulator response", func(ctx context.Context) error {
		return r.events.AppendSimulatorResponse(ctx, data)
	})
}

// ParamChange records a direct slider change to the stored value of p.
func (r *Recorder) ParamChange(ctx context.Context, sessionID string, p simulator.Param, after simulator.State) {
	if r.events == nil {
		return
	}
	data := store.ParamChangeEventData{
		SessionID: sessionID,
		Param:     string(p),
		Value:     after.Value(p),
	}
	r.write(ctx, "param change", func(ctx context.Context) error {
		return r.events.AppendParamChange(ctx, data)
	})
}

// SaveSnapshot stores view as the page's final state and prunes old
// snapshots. view is any JSON-encodable page snapshot.
func (r *Recorder) SaveSnapshot(ctx context.Context, sessionID, page string, view any) {
	if r.snapshots == nil {
		return
	}
	state, err := toMap(view)
	if err != nil {
		r.warn("snapshot", err)
		return
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:   SnapshotVersion,
			Page:      page,
			SessionID: sessionID,
			State:     state,
		},
	}
	r.write(ctx, "snapshot", func(ctx context.Context) error {
		if err := r.snapshots.Save(ctx, snap); err != nil {
			return err
		}
		return r.snapshots.Prune(ctx, KeepSnapshots)
	})
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// write runs fn with a context that outlives ctx's cancellation.
func (r *Recorder) write(ctx context.Context, what string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		r.warn(what, err)
	}
}

func (r *Recorder) warn(what string, err error) {
	if r.Warn != nil {
		fmt.Fprintf(r.Warn, "warning: failed to record %s: %v\n", what, err)
	}
}
