package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Subject is a course served by the reference server, with its full
// grading structure stored as JSON.
type Subject struct {
	ent.Schema
}

func (Subject) Fields() []ent.Field {
	return []ent.Field{
		field.String("subject_key").
			Unique().
			NotEmpty().
			Comment("External subject id used in API paths"),
		field.String("name").
			Default(""),
		field.Float("passing_percentage").
			Default(0).
			Comment("Passing threshold, 0-100"),
		field.JSON("structure", map[string]any{}).
			Comment("Weight tree as JSON"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Subject) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("updated_at"),
	}
}
