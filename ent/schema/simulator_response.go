package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SimulatorResponse records one simulated answer with the adapted parameters.
type SimulatorResponse struct {
	ent.Schema
}

func (SimulatorResponse) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, SessionMixin{}}
}

func (SimulatorResponse) Fields() []ent.Field {
	return []ent.Field{
		field.Int("practice").
			Comment("Practice count the response was predicted at"),
		field.Bool("correct"),
		field.Float("probability").
			Comment("Predicted success before the response"),
		field.Float("theta"),
		field.Float("beta"),
		field.Float("gamma"),
	}
}
