package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GenerationEvent records the outcome of one worksheet generation,
// including whether the fixed practice set was served instead.
type GenerationEvent struct {
	ent.Schema
}

func (GenerationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GenerationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Default(""),
		field.String("user_id").
			Default(""),
		field.String("worksheet_id").
			Default(""),
		field.String("level"),
		field.String("topic"),
		field.String("difficulty"),
		field.Int("question_count").
			Default(0),
		field.Bool("fallback").
			Default(false),
		field.String("failure_kind").
			Default("").
			Comment("transport, service, parse, or empty on success"),
		field.String("failure_message").
			Default(""),
		field.Int64("latency_ms").
			Default(0),
	}
}

func (GenerationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("failure_kind"),
	}
}
