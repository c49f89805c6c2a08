package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ExplorerAnswer records one answered Learning Explorer task.
type ExplorerAnswer struct {
	ent.Schema
}

func (ExplorerAnswer) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, SessionMixin{}}
}

func (ExplorerAnswer) Fields() []ent.Field {
	return []ent.Field{
		field.Int("task_id").
			Comment("Task that was answered"),
		field.String("concept").
			NotEmpty().
			Comment("Concept the task exercises"),
		field.Int("option").
			Comment("Zero-based chosen option"),
		field.Bool("correct").
			Comment("Whether the chosen option was right"),
		field.Float("probability").
			Comment("Predicted success before the answer"),
		field.Float("ability").
			Comment("Learner ability after the answer"),
		field.Int("opportunities").
			Comment("Concept opportunities after the answer"),
	}
}

func (ExplorerAnswer) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("concept"),
	}
}
