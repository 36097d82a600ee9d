// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/gradewise/ent/predicate"
	"github.com/abhisek/gradewise/ent/subject"
)

// SubjectUpdate is the builder for updating Subject entities.
type SubjectUpdate struct {
	config
	hooks    []Hook
	mutation *SubjectMutation
}

// Where appends a list predicates to the SubjectUpdate builder.
func (_u *SubjectUpdate) Where(ps ...predicate.Subject) *SubjectUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSubjectKey sets the "subject_key" field.
func (_u *SubjectUpdate) SetSubjectKey(v string) *SubjectUpdate {
	_u.mutation.SetSubjectKey(v)
	return _u
}

// SetNillableSubjectKey sets the "subject_key" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableSubjectKey(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetSubjectKey(*v)
	}
	return _u
}

// SetName sets the "name" field.
func (_u *SubjectUpdate) SetName(v string) *SubjectUpdate {
	_u.mutation.SetName(v)
	return _u
}

// SetNillableName sets the "name" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableName(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetName(*v)
	}
	return _u
}

// SetPassingPercentage sets the "passing_percentage" field.
func (_u *SubjectUpdate) SetPassingPercentage(v float64) *SubjectUpdate {
	_u.mutation.ResetPassingPercentage()
	_u.mutation.SetPassingPercentage(v)
	return _u
}

// SetNillablePassingPercentage sets the "passing_percentage" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillablePassingPercentage(v *float64) *SubjectUpdate {
	if v != nil {
		_u.SetPassingPercentage(*v)
	}
	return _u
}

// AddPassingPercentage adds value to the "passing_percentage" field.
func (_u *SubjectUpdate) AddPassingPercentage(v float64) *SubjectUpdate {
	_u.mutation.AddPassingPercentage(v)
	return _u
}

// SetStructure sets the "structure" field.
func (_u *SubjectUpdate) SetStructure(v map[string]interface{}) *SubjectUpdate {
	_u.mutation.SetStructure(v)
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *SubjectUpdate) SetUpdatedAt(v time.Time) *SubjectUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the SubjectMutation object of the builder.
func (_u *SubjectUpdate) Mutation() *SubjectMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SubjectUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SubjectUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SubjectUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SubjectUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *SubjectUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := subject.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SubjectUpdate) check() error {
	if v, ok := _u.mutation.SubjectKey(); ok {
		if err := subject.SubjectKeyValidator(v); err != nil {
			return &ValidationError{Name: "subject_key", err: fmt.Errorf(`ent: validator failed for field "Subject.subject_key": %w`, err)}
		}
	}
	return nil
}

func (_u *SubjectUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(subject.Table, subject.Columns, sqlgraph.NewFieldSpec(subject.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SubjectKey(); ok {
		_spec.SetField(subject.FieldSubjectKey, field.TypeString, value)
	}
	if value, ok := _u.mutation.Name(); ok {
		_spec.SetField(subject.FieldName, field.TypeString, value)
	}
	if value, ok := _u.mutation.PassingPercentage(); ok {
		_spec.SetField(subject.FieldPassingPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedPassingPercentage(); ok {
		_spec.AddField(subject.FieldPassingPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Structure(); ok {
		_spec.SetField(subject.FieldStructure, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(subject.FieldUpdatedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{subject.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SubjectUpdateOne is the builder for updating a single Subject entity.
type SubjectUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SubjectMutation
}

// SetSubjectKey sets the "subject_key" field.
func (_u *SubjectUpdateOne) SetSubjectKey(v string) *SubjectUpdateOne {
	_u.mutation.SetSubjectKey(v)
	return _u
}

// SetNillableSubjectKey sets the "subject_key" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableSubjectKey(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetSubjectKey(*v)
	}
	return _u
}

// SetName sets the "name" field.
func (_u *SubjectUpdateOne) SetName(v string) *SubjectUpdateOne {
	_u.mutation.SetName(v)
	return _u
}

// SetNillableName sets the "name" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableName(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetName(*v)
	}
	return _u
}

// SetPassingPercentage sets the "passing_percentage" field.
func (_u *SubjectUpdateOne) SetPassingPercentage(v float64) *SubjectUpdateOne {
	_u.mutation.ResetPassingPercentage()
	_u.mutation.SetPassingPercentage(v)
	return _u
}

// SetNillablePassingPercentage sets the "passing_percentage" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillablePassingPercentage(v *float64) *SubjectUpdateOne {
	if v != nil {
		_u.SetPassingPercentage(*v)
	}
	return _u
}

// AddPassingPercentage adds value to the "passing_percentage" field.
func (_u *SubjectUpdateOne) AddPassingPercentage(v float64) *SubjectUpdateOne {
	_u.mutation.AddPassingPercentage(v)
	return _u
}

// SetStructure sets the "structure" field.
func (_u *SubjectUpdateOne) SetStructure(v map[string]interface{}) *SubjectUpdateOne {
	_u.mutation.SetStructure(v)
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *SubjectUpdateOne) SetUpdatedAt(v time.Time) *SubjectUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the SubjectMutation object of the builder.
func (_u *SubjectUpdateOne) Mutation() *SubjectMutation {
	return _u.mutation
}

// Where appends a list predicates to the SubjectUpdate builder.
func (_u *SubjectUpdateOne) Where(ps ...predicate.Subject) *SubjectUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SubjectUpdateOne) Select(field string, fields ...string) *SubjectUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Subject entity.
func (_u *SubjectUpdateOne) Save(ctx context.Context) (*Subject, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SubjectUpdateOne) SaveX(ctx context.Context) *Subject {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SubjectUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SubjectUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *SubjectUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := subject.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SubjectUpdateOne) check() error {
	if v, ok := _u.mutation.SubjectKey(); ok {
		if err := subject.SubjectKeyValidator(v); err != nil {
			return &ValidationError{Name: "subject_key", err: fmt.Errorf(`ent: validator failed for field "Subject.subject_key": %w`, err)}
		}
	}
	return nil
}

func (_u *SubjectUpdateOne) sqlSave(ctx context.Context) (_node *Subject, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(subject.Table, subject.Columns, sqlgraph.NewFieldSpec(subject.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Subject.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, subject.FieldID)
		for _, f := range fields {
			if !subject.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != subject.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SubjectKey(); ok {
		_spec.SetField(subject.FieldSubjectKey, field.TypeString, value)
	}
	if value, ok := _u.mutation.Name(); ok {
		_spec.SetField(subject.FieldName, field.TypeString, value)
	}
	if value, ok := _u.mutation.PassingPercentage(); ok {
		_spec.SetField(subject.FieldPassingPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedPassingPercentage(); ok {
		_spec.AddField(subject.FieldPassingPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Structure(); ok {
		_spec.SetField(subject.FieldStructure, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(subject.FieldUpdatedAt, field.TypeTime, value)
	}
	_node = &Subject{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{subject.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
