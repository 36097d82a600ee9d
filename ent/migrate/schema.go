// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SubjectsColumns holds the columns for the "subjects" table.
	SubjectsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "subject_key", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "passing_percentage", Type: field.TypeFloat64, Default: 0},
		{Name: "structure", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// SubjectsTable holds the schema information for the "subjects" table.
	SubjectsTable = &schema.Table{
		Name:       "subjects",
		Columns:    SubjectsColumns,
		PrimaryKey: []*schema.Column{SubjectsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "subject_updated_at",
				Unique:  false,
				Columns: []*schema.Column{SubjectsColumns[5]},
			},
		},
	}
	// SyncEventsColumns holds the columns for the "sync_events" table.
	SyncEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "request_id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "success", Type: field.TypeBool},
		{Name: "status_code", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	// SyncEventsTable holds the schema information for the "sync_events" table.
	SyncEventsTable = &schema.Table{
		Name:       "sync_events",
		Columns:    SyncEventsColumns,
		PrimaryKey: []*schema.Column{SyncEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "syncevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{SyncEventsColumns[1]},
			},
			{
				Name:    "syncevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SyncEventsColumns[2]},
			},
			{
				Name:    "syncevent_subject_id",
				Unique:  false,
				Columns: []*schema.Column{SyncEventsColumns[4]},
			},
			{
				Name:    "syncevent_action",
				Unique:  false,
				Columns: []*schema.Column{SyncEventsColumns[5]},
			},
			{
				Name:    "syncevent_success",
				Unique:  false,
				Columns: []*schema.Column{SyncEventsColumns[6]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SubjectsTable,
		SyncEventsTable,
	}
)

func init() {
}
