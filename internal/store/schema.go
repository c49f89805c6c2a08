// Table definitions for the migrator. ent/schema is the source of truth for
// fields and indexes; the tables here mirror it by hand because the store
// talks to ent's dialect/sql layer directly instead of a generated client.
// TestTablesMatchEntSchema fails when the two drift apart, so change both
// together.

package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event table starts with the same three columns: id, sequence and
// timestamp. eventColumns returns them followed by the table's own columns.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, cols...)
}

// eventTable builds an event table indexed on timestamp plus the named columns.
func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	return indexedTable(name, cols, append([]string{"timestamp"}, indexed...)...)
}

func indexedTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, c := range cols {
		for _, col := range indexed {
			if c.Name == col {
				t.Indexes = append(t.Indexes, &schema.Index{
					Name:    t.Name + "_" + c.Name,
					Columns: []*schema.Column{c},
				})
			}
		}
	}
	return t
}

var (
	// PageSessionsColumns holds the columns for the "page_sessions" table.
	PageSessionsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "page", Type: field.TypeString},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
	)
	// PageSessionsTable records page entries and exits.
	PageSessionsTable = eventTable("page_sessions", PageSessionsColumns, "session_id")

	// ExplorerAnswersColumns holds the columns for the "explorer_answers" table.
	ExplorerAnswersColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "task_id", Type: field.TypeInt},
		&schema.Column{Name: "concept", Type: field.TypeString},
		&schema.Column{Name: "option", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "probability", Type: field.TypeFloat64},
		&schema.Column{Name: "ability", Type: field.TypeFloat64},
		&schema.Column{Name: "opportunities", Type: field.TypeInt},
	)
	// ExplorerAnswersTable records every answered explorer task.
	ExplorerAnswersTable = eventTable("explorer_answers", ExplorerAnswersColumns, "session_id", "concept")

	// SimulatorResponsesColumns holds the columns for the "simulator_responses" table.
	SimulatorResponsesColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "practice", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "probability", Type: field.TypeFloat64},
		&schema.Column{Name: "theta", Type: field.TypeFloat64},
		&schema.Column{Name: "beta", Type: field.TypeFloat64},
		&schema.Column{Name: "gamma", Type: field.TypeFloat64},
	)
	// SimulatorResponsesTable records simulated responses with the parameters
	// after adaptation.
	SimulatorResponsesTable = eventTable("simulator_responses", SimulatorResponsesColumns, "session_id")

	// ParamChangesColumns holds the columns for the "param_changes" table.
	ParamChangesColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "param", Type: field.TypeString},
		&schema.Column{Name: "value", Type: field.TypeFloat64},
	)
	// ParamChangesTable records direct slider changes in the simulator.
	ParamChangesTable = eventTable("param_changes", ParamChangesColumns, "session_id")

	// LlmRequestsColumns holds the columns for the "llm_requests" table.
	LlmRequestsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
	)
	// LlmRequestsTable records LLM API calls.
	LlmRequestsTable = eventTable("llm_requests", LlmRequestsColumns, "provider", "purpose", "success")

	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable stores end-of-page state captures.
	SnapshotsTable = indexedTable("snapshots", SnapshotsColumns, "sequence", "timestamp")

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		PageSessionsTable,
		ExplorerAnswersTable,
		SimulatorResponsesTable,
		ParamChangesTable,
		LlmRequestsTable,
		SnapshotsTable,
	}
)
