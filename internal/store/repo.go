package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only this page session
}

// Page names.
const (
	PageExplorer  = "explorer"
	PageSimulator = "simulator"
)

// Session sources.
const (
	SourceTUI  = "tui"
	SourceHTTP = "http"
)

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// PageSessionEventData records a page being opened or closed.
type PageSessionEventData struct {
	SessionID string
	Page      string
	Source    string
	Action    string
}

// ExplorerAnswerEventData captures one answered explorer task.
type ExplorerAnswerEventData struct {
	SessionID     string
	TaskID        int
	Concept       string
	Option        int
	Correct       bool
	Probability   float64 // predicted before the answer
	Ability       float64 // after the answer
	Opportunities int     // after the answer
}

// SimulatorResponseEventData captures one simulated response.
type SimulatorResponseEventData struct {
	SessionID   string
	Practice    int
	Correct     bool
	Probability float64
	Theta       float64 // after adaptation
	Beta        float64
	Gamma       float64
}

// ParamChangeEventData captures a direct slider change.
type ParamChangeEventData struct {
	SessionID string
	Param     string
	Value     float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ActivityKind classifies a history entry.
type ActivityKind string

const (
	KindSession  ActivityKind = "session"
	KindAnswer   ActivityKind = "answer"
	KindResponse ActivityKind = "response"
	KindParam    ActivityKind = "param"
)

// Activity is one merged history entry across event tables.
type Activity struct {
	Sequence  int64
	Timestamp time.Time
	Kind      ActivityKind
	SessionID string
	Summary   string
}

// ConceptStats aggregates explorer answers for one concept.
type ConceptStats struct {
	Concept string
	Answers int
	Correct int
}

// Stats aggregates the whole activity log.
type Stats struct {
	Sessions           map[string]int // page -> started sessions
	ExplorerAnswers    int
	ExplorerCorrect    int
	Concepts           []ConceptStats
	SimulatorResponses int
	SimulatorCorrect   int
	ParamChanges       int
	LLMRequests        int
	LLMInputTokens     int
	LLMOutputTokens    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendPageSession records a page entry or exit.
	AppendPageSession(ctx context.Context, data PageSessionEventData) error

	// AppendExplorerAnswer records an answered explorer task.
	AppendExplorerAnswer(ctx context.Context, data ExplorerAnswerEventData) error

	// AppendSimulatorResponse records a simulated response.
	AppendSimulatorResponse(ctx context.Context, data SimulatorResponseEventData) error

	// AppendParamChange records a direct simulator slider change.
	AppendParamChange(ctx context.Context, data ParamChangeEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// History returns activity across all tables, newest first.
	History(ctx context.Context, opts QueryOpts) ([]Activity, error)

	// LLMRequests returns stored LLM requests, newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// Stats aggregates the activity log.
	Stats(ctx context.Context) (*Stats, error)
}

// SnapshotData captures a page's final state.
type SnapshotData struct {
	Version   int            `json:"version"`
	Page      string         `json:"page"`
	SessionID string         `json:"session_id"`
	State     map[string]any `json:"state,omitempty"`
}

// Snapshot represents a point-in-time capture of a page.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages page snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is set to the latest
	// event sequence.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
