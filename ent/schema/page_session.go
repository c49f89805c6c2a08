package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// PageSession records a page being opened or closed.
type PageSession struct {
	ent.Schema
}

func (PageSession) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, SessionMixin{}}
}

func (PageSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("page").
			NotEmpty().
			Comment("explorer or simulator"),
		field.String("source").
			NotEmpty().
			Comment("tui or http"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
	}
}
