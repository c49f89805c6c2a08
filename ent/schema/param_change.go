package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ParamChange records a direct simulator slider change.
type ParamChange struct {
	ent.Schema
}

func (ParamChange) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, SessionMixin{}}
}

func (ParamChange) Fields() []ent.Field {
	return []ent.Field{
		field.String("param").
			NotEmpty().
			Comment("theta, beta, gamma or practice"),
		field.Float("value").
			Comment("Value after clamping"),
	}
}
