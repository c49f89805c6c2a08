package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin stamps a row with its position in the store-wide event order.
// The sequence comes from the global_sequence table, so it is unique across
// every event table, not just within one.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Position in the store-wide event order, starting at 1"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("When the event was recorded (UTC)"),
	}
}

// Range scans for history and stats go through timestamp; sequence is
// already covered by its unique constraint.
func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}

// SessionMixin ties an event to the explorer or simulator visit it happened in.
type SessionMixin struct {
	mixin.Schema
}

func (SessionMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Immutable().
			Comment("UUID of the page visit, shared with its PageSession rows"),
	}
}

func (SessionMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
