package weights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a node in the grading structure. Backends emit either JSON
// strings or numbers, so decoding accepts both.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

// PreTest is informational only; it never carries weight.
type PreTest struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Quiz is an optional graded quiz attached to a unit or a lesson.
type Quiz struct {
	ID      ID      `json:"id"`
	Title   string  `json:"title"`
	Weight  float64 `json:"weight"`
	IsFixed bool    `json:"is_fixed"`
}

// PostTest is the final assessment. Its weight is a top-level bucket.
type PostTest struct {
	ID      ID      `json:"id"`
	Title   string  `json:"title"`
	Weight  float64 `json:"weight"`
	IsFixed bool    `json:"is_fixed"`
}

// Lesson is a single lesson inside a unit.
type Lesson struct {
	ID       ID      `json:"id"`
	Title    string  `json:"title"`
	Order    int     `json:"order"`
	Weight   float64 `json:"weight"`
	IsFixed  bool    `json:"is_fixed"`
	HasVideo bool    `json:"has_video"`
	Quiz     *Quiz   `json:"quiz,omitempty"`
}

// Unit ("big lesson") carries a budget that its children must exactly fill,
// while the budget itself is part of the tree's 100.
type Unit struct {
	ID      ID       `json:"id"`
	Title   string   `json:"title"`
	Order   int      `json:"order"`
	Weight  float64  `json:"weight"`
	IsFixed bool     `json:"is_fixed"`
	Quiz    *Quiz    `json:"quiz,omitempty"`
	Lessons []Lesson `json:"lessons"`
}

// Tree is the full grading structure of a subject.
type Tree struct {
	PreTest  *PreTest  `json:"pre_test,omitempty"`
	Units    []Unit    `json:"big_lessons"`
	PostTest *PostTest `json:"post_test,omitempty"`
}

// NodeKind distinguishes the editable weight slots of a tree.
type NodeKind int

const (
	KindUnit NodeKind = iota
	KindUnitQuiz
	KindLesson
	KindLessonQuiz
	KindPostTest
)

func (k NodeKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindUnitQuiz:
		return "unit quiz"
	case KindLesson:
		return "lesson"
	case KindLessonQuiz:
		return "lesson quiz"
	case KindPostTest:
		return "post-test"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Depth is the nesting level of the kind in a flattened tree.
func (k NodeKind) Depth() int {
	switch k {
	case KindUnitQuiz, KindLesson:
		return 1
	case KindLessonQuiz:
		return 2
	default:
		return 0
	}
}

// NodeRef addresses one weight slot. UnitID is required for every kind except
// KindPostTest; LessonID only for the lesson kinds.
type NodeRef struct {
	Kind     NodeKind
	UnitID   ID
	LessonID ID
}

func UnitRef(unitID ID) NodeRef     { return NodeRef{Kind: KindUnit, UnitID: unitID} }
func UnitQuizRef(unitID ID) NodeRef { return NodeRef{Kind: KindUnitQuiz, UnitID: unitID} }
func PostTestRef() NodeRef          { return NodeRef{Kind: KindPostTest} }

func LessonRef(unitID, lessonID ID) NodeRef {
	return NodeRef{Kind: KindLesson, UnitID: unitID, LessonID: lessonID}
}

func LessonQuizRef(unitID, lessonID ID) NodeRef {
	return NodeRef{Kind: KindLessonQuiz, UnitID: unitID, LessonID: lessonID}
}

func (r NodeRef) String() string {
	switch r.Kind {
	case KindPostTest:
		return r.Kind.String()
	case KindUnit, KindUnitQuiz:
		return fmt.Sprintf("%s %s", r.Kind, r.UnitID)
	default:
		return fmt.Sprintf("%s %s/%s", r.Kind, r.UnitID, r.LessonID)
	}
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	out := Tree{Units: make([]Unit, len(t.Units))}
	if t.PreTest != nil {
		p := *t.PreTest
		out.PreTest = &p
	}
	if t.PostTest != nil {
		p := *t.PostTest
		out.PostTest = &p
	}
	for i, u := range t.Units {
		out.Units[i] = u.clone()
	}
	return out
}

func (u Unit) clone() Unit {
	u.Quiz = cloneQuiz(u.Quiz)
	if u.Lessons != nil {
		lessons := make([]Lesson, len(u.Lessons))
		for i, l := range u.Lessons {
			l.Quiz = cloneQuiz(l.Quiz)
			lessons[i] = l
		}
		u.Lessons = lessons
	}
	return u
}

func cloneQuiz(q *Quiz) *Quiz {
	if q == nil {
		return nil
	}
	c := *q
	return &c
}

// UnitIndex returns the position of the unit with the given id, or -1.
func (t Tree) UnitIndex(id ID) int {
	for i := range t.Units {
		if t.Units[i].ID == id {
			return i
		}
	}
	return -1
}

// LessonIndex returns the position of the lesson with the given id, or -1.
func (u Unit) LessonIndex(id ID) int {
	for i := range u.Lessons {
		if u.Lessons[i].ID == id {
			return i
		}
	}
	return -1
}

// Weight returns the stored weight of the referenced slot.
func (t Tree) Weight(ref NodeRef) (float64, bool) {
	switch ref.Kind {
	case KindPostTest:
		if t.PostTest == nil {
			return 0, false
		}
		return t.PostTest.Weight, true
	}

	ui := t.UnitIndex(ref.UnitID)
	if ui < 0 {
		return 0, false
	}
	u := t.Units[ui]

	switch ref.Kind {
	case KindUnit:
		return u.Weight, true
	case KindUnitQuiz:
		if u.Quiz == nil {
			return 0, false
		}
		return u.Quiz.Weight, true
	}

	li := u.LessonIndex(ref.LessonID)
	if li < 0 {
		return 0, false
	}
	l := u.Lessons[li]
	switch ref.Kind {
	case KindLesson:
		return l.Weight, true
	case KindLessonQuiz:
		if l.Quiz == nil {
			return 0, false
		}
		return l.Quiz.Weight, true
	}
	return 0, false
}

// IsFixed reports whether the referenced slot is system-locked. Missing
// slots report false.
func (t Tree) IsFixed(ref NodeRef) bool {
	switch ref.Kind {
	case KindPostTest:
		return t.PostTest != nil && t.PostTest.IsFixed
	}

	ui := t.UnitIndex(ref.UnitID)
	if ui < 0 {
		return false
	}
	u := t.Units[ui]

	switch ref.Kind {
	case KindUnit:
		return u.IsFixed
	case KindUnitQuiz:
		return u.Quiz != nil && u.Quiz.IsFixed
	}

	li := u.LessonIndex(ref.LessonID)
	if li < 0 {
		return false
	}
	l := u.Lessons[li]
	switch ref.Kind {
	case KindLesson:
		return l.IsFixed
	case KindLessonQuiz:
		return l.Quiz != nil && l.Quiz.IsFixed
	}
	return false
}

// Refs lists every weight slot in display order: each unit followed by its
// quiz, then each lesson and its quiz; the post-test last.
func (t Tree) Refs() []NodeRef {
	var refs []NodeRef
	for _, u := range t.Units {
		refs = append(refs, UnitRef(u.ID))
		if u.Quiz != nil {
			refs = append(refs, UnitQuizRef(u.ID))
		}
		for _, l := range u.Lessons {
			refs = append(refs, LessonRef(u.ID, l.ID))
			if l.Quiz != nil {
				refs = append(refs, LessonQuizRef(u.ID, l.ID))
			}
		}
	}
	if t.PostTest != nil {
		refs = append(refs, PostTestRef())
	}
	return refs
}

// PreTestLabel names the pre-test, or returns "" when the tree has none.
func (t Tree) PreTestLabel() string {
	if t.PreTest == nil {
		return ""
	}
	return titleOr(t.PreTest.Title, "Pre-test")
}

// Label returns a display name for ref: the node's title, or a generic name
// when the title is empty. Unknown refs fall back to ref.String().
func (t Tree) Label(ref NodeRef) string {
	if ref.Kind == KindPostTest {
		if t.PostTest == nil {
			return ref.String()
		}
		return titleOr(t.PostTest.Title, "Post-test")
	}

	ui := t.UnitIndex(ref.UnitID)
	if ui < 0 {
		return ref.String()
	}
	u := t.Units[ui]

	switch ref.Kind {
	case KindUnit:
		return titleOr(u.Title, "Unit "+string(u.ID))
	case KindUnitQuiz:
		if u.Quiz == nil {
			return ref.String()
		}
		return titleOr(u.Quiz.Title, "Unit quiz")
	}

	li := u.LessonIndex(ref.LessonID)
	if li < 0 {
		return ref.String()
	}
	l := u.Lessons[li]
	if ref.Kind == KindLessonQuiz {
		if l.Quiz == nil {
			return ref.String()
		}
		return titleOr(l.Quiz.Title, "Lesson quiz")
	}
	return titleOr(l.Title, "Lesson "+string(l.ID))
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}
