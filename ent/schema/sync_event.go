package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SyncEvent records every call the editor makes to the grading service.
type SyncEvent struct {
	ent.Schema
}

func (SyncEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SyncEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("request_id").
			Comment("Client-generated UUID for correlating logs"),
		field.String("subject_id").
			Comment("Subject the call targeted"),
		field.String("action").
			Comment("load, save, distribute or passing"),
		field.Bool("success").
			Comment("Whether the call succeeded"),
		field.Int("status_code").
			Default(0).
			Comment("HTTP status when the server answered with an error"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the request"),
		field.String("error_message").
			Default("").
			Comment("Error message if failed"),
	}
}

func (SyncEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("subject_id"),
		index.Fields("action"),
		index.Fields("success"),
	}
}
