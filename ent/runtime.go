// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/gradewise/ent/schema"
	"github.com/abhisek/gradewise/ent/subject"
	"github.com/abhisek/gradewise/ent/syncevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	subjectFields := schema.Subject{}.Fields()
	_ = subjectFields
	// subjectDescSubjectKey is the schema descriptor for subject_key field.
	subjectDescSubjectKey := subjectFields[0].Descriptor()
	// subject.SubjectKeyValidator is a validator for the "subject_key" field. It is called by the builders before save.
	subject.SubjectKeyValidator = subjectDescSubjectKey.Validators[0].(func(string) error)
	// subjectDescName is the schema descriptor for name field.
	subjectDescName := subjectFields[1].Descriptor()
	// subject.DefaultName holds the default value on creation for the name field.
	subject.DefaultName = subjectDescName.Default.(string)
	// subjectDescPassingPercentage is the schema descriptor for passing_percentage field.
	subjectDescPassingPercentage := subjectFields[2].Descriptor()
	// subject.DefaultPassingPercentage holds the default value on creation for the passing_percentage field.
	subject.DefaultPassingPercentage = subjectDescPassingPercentage.Default.(float64)
	// subjectDescUpdatedAt is the schema descriptor for updated_at field.
	subjectDescUpdatedAt := subjectFields[4].Descriptor()
	// subject.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	subject.DefaultUpdatedAt = subjectDescUpdatedAt.Default.(func() time.Time)
	// subject.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	subject.UpdateDefaultUpdatedAt = subjectDescUpdatedAt.UpdateDefault.(func() time.Time)
	synceventMixin := schema.SyncEvent{}.Mixin()
	synceventMixinFields0 := synceventMixin[0].Fields()
	_ = synceventMixinFields0
	synceventFields := schema.SyncEvent{}.Fields()
	_ = synceventFields
	// synceventDescTimestamp is the schema descriptor for timestamp field.
	synceventDescTimestamp := synceventMixinFields0[1].Descriptor()
	// syncevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	syncevent.DefaultTimestamp = synceventDescTimestamp.Default.(func() time.Time)
	// synceventDescStatusCode is the schema descriptor for status_code field.
	synceventDescStatusCode := synceventFields[4].Descriptor()
	// syncevent.DefaultStatusCode holds the default value on creation for the status_code field.
	syncevent.DefaultStatusCode = synceventDescStatusCode.Default.(int)
	// synceventDescLatencyMs is the schema descriptor for latency_ms field.
	synceventDescLatencyMs := synceventFields[5].Descriptor()
	// syncevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	syncevent.DefaultLatencyMs = synceventDescLatencyMs.Default.(int64)
	// synceventDescErrorMessage is the schema descriptor for error_message field.
	synceventDescErrorMessage := synceventFields[6].Descriptor()
	// syncevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	syncevent.DefaultErrorMessage = synceventDescErrorMessage.Default.(string)
}
