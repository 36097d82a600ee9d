package weights

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when a mutator targets a slot that does not exist.
	ErrNodeNotFound = errors.New("node not found")
	// ErrFixedNode is returned when a draft edit targets a system-locked slot.
	ErrFixedNode = errors.New("node weight is fixed")
)

// SetUnitWeight returns a copy of t with the unit's budget replaced.
func (t Tree) SetUnitWeight(unitID ID, w float64) (Tree, error) {
	return t.updateUnit(unitID, func(u *Unit) error {
		u.Weight = w
		return nil
	})
}

// SetUnitQuizWeight returns a copy of t with the unit quiz weight replaced.
func (t Tree) SetUnitQuizWeight(unitID ID, w float64) (Tree, error) {
	return t.updateUnit(unitID, func(u *Unit) error {
		if u.Quiz == nil {
			return fmt.Errorf("unit %s has no quiz: %w", unitID, ErrNodeNotFound)
		}
		q := *u.Quiz
		q.Weight = w
		u.Quiz = &q
		return nil
	})
}

// SetLessonWeight returns a copy of t with one lesson weight replaced.
func (t Tree) SetLessonWeight(unitID, lessonID ID, w float64) (Tree, error) {
	return t.updateLesson(unitID, lessonID, func(l *Lesson) error {
		l.Weight = w
		return nil
	})
}

// SetLessonQuizWeight returns a copy of t with one lesson quiz weight replaced.
func (t Tree) SetLessonQuizWeight(unitID, lessonID ID, w float64) (Tree, error) {
	return t.updateLesson(unitID, lessonID, func(l *Lesson) error {
		if l.Quiz == nil {
			return fmt.Errorf("lesson %s has no quiz: %w", lessonID, ErrNodeNotFound)
		}
		q := *l.Quiz
		q.Weight = w
		l.Quiz = &q
		return nil
	})
}

// SetPostTestWeight returns a copy of t with the post-test weight replaced.
func (t Tree) SetPostTestWeight(w float64) (Tree, error) {
	if t.PostTest == nil {
		return t, fmt.Errorf("post-test: %w", ErrNodeNotFound)
	}
	out := t
	p := *t.PostTest
	p.Weight = w
	out.PostTest = &p
	return out, nil
}

// SetWeight dispatches to the mutator matching ref.Kind.
func (t Tree) SetWeight(ref NodeRef, w float64) (Tree, error) {
	switch ref.Kind {
	case KindUnit:
		return t.SetUnitWeight(ref.UnitID, w)
	case KindUnitQuiz:
		return t.SetUnitQuizWeight(ref.UnitID, w)
	case KindLesson:
		return t.SetLessonWeight(ref.UnitID, ref.LessonID, w)
	case KindLessonQuiz:
		return t.SetLessonQuizWeight(ref.UnitID, ref.LessonID, w)
	case KindPostTest:
		return t.SetPostTestWeight(w)
	default:
		return t, fmt.Errorf("unknown node kind %d", ref.Kind)
	}
}

// updateUnit copies the units slice and the target unit only; siblings are
// shared with the original, which is safe because nothing mutates in place.
func (t Tree) updateUnit(unitID ID, fn func(u *Unit) error) (Tree, error) {
	i := t.UnitIndex(unitID)
	if i < 0 {
		return t, fmt.Errorf("unit %s: %w", unitID, ErrNodeNotFound)
	}

	u := t.Units[i]
	if err := fn(&u); err != nil {
		return t, err
	}

	units := make([]Unit, len(t.Units))
	copy(units, t.Units)
	units[i] = u

	out := t
	out.Units = units
	return out, nil
}

func (t Tree) updateLesson(unitID, lessonID ID, fn func(l *Lesson) error) (Tree, error) {
	return t.updateUnit(unitID, func(u *Unit) error {
		j := u.LessonIndex(lessonID)
		if j < 0 {
			return fmt.Errorf("lesson %s in unit %s: %w", lessonID, unitID, ErrNodeNotFound)
		}

		l := u.Lessons[j]
		if err := fn(&l); err != nil {
			return err
		}

		lessons := make([]Lesson, len(u.Lessons))
		copy(lessons, u.Lessons)
		lessons[j] = l
		u.Lessons = lessons
		return nil
	})
}

// Draft is the editor's working copy: a tree plus its derived allocation.
// Values are never mutated; every edit produces a new Draft.
type Draft struct {
	Tree       Tree
	Allocation Allocation
}

// NewDraft wraps t and computes its allocation.
func NewDraft(t Tree) Draft {
	return Draft{Tree: t, Allocation: Recompute(t)}
}

// Apply commits one field value to the draft and recomputes.
func (d Draft) Apply(ref NodeRef, w float64) (Draft, error) {
	if _, ok := d.Tree.Weight(ref); !ok {
		return d, fmt.Errorf("%s: %w", ref, ErrNodeNotFound)
	}
	if d.Tree.IsFixed(ref) {
		return d, fmt.Errorf("%s: %w", ref, ErrFixedNode)
	}
	t, err := d.Tree.SetWeight(ref, w)
	if err != nil {
		return d, err
	}
	return NewDraft(t), nil
}

// CanSave runs the validation gate over the draft's allocation.
func (d Draft) CanSave() GateResult {
	return gateFrom(d.Allocation)
}
