package weights

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func quiz(id ID, w float64) *Quiz {
	return &Quiz{ID: id, Title: "Quiz " + string(id), Weight: w}
}

// sampleTree is 4 units of 20 plus a 20-point post-test.
func sampleTree() Tree {
	return Tree{
		PreTest: &PreTest{ID: "pre", Title: "Pre-test"},
		Units: []Unit{
			{
				ID: "u1", Title: "Fractions", Order: 1, Weight: 20,
				Quiz: quiz("u1q", 5),
				Lessons: []Lesson{
					{ID: "l1", Title: "Halves", Order: 1, Weight: 10},
					{ID: "l2", Title: "Thirds", Order: 2, Weight: 5, HasVideo: true},
				},
			},
			{ID: "u2", Title: "Decimals", Order: 2, Weight: 20, IsFixed: true},
			{
				ID: "u3", Title: "Geometry", Order: 3, Weight: 20,
				Lessons: []Lesson{
					{ID: "l3", Title: "Angles", Order: 1, Weight: 10, Quiz: quiz("l3q", 5)},
				},
			},
			{ID: "u4", Title: "Measurement", Order: 4, Weight: 20},
		},
		PostTest: &PostTest{ID: "post", Title: "Final", Weight: 20},
	}
}

func TestRecomputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		units     []float64
		post      *float64
		wantUsed  float64
		wantValid bool
		wantErrs  []string
	}{
		{"exact 100", []float64{25, 25, 25}, ptr(25.0), 100, true, nil},
		{"no post-test", []float64{50, 50}, nil, 100, true, nil},
		{"just under", []float64{33.33, 33.33, 33.33}, nil, 99.99, false,
			[]string{"incomplete, below 100% (99.99%)"}},
		{"just over", []float64{50, 50.01}, nil, 100.01, false,
			[]string{"exceeds 100% (100.01%)"}},
		{"two-decimal parts", []float64{33.33, 33.33, 33.34}, nil, 100, true, nil},
		{"float drift prone", []float64{10.1, 20.2, 30.3}, ptr(39.4), 100, true, nil},
		{"empty", nil, nil, 0, false, []string{"incomplete, below 100% (0%)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tree Tree
			for i, w := range tt.units {
				tree.Units = append(tree.Units, Unit{ID: ID(rune('a' + i)), Weight: w})
			}
			if tt.post != nil {
				tree.PostTest = &PostTest{ID: "post", Weight: *tt.post}
			}

			a := Recompute(tree)
			if a.TotalUsed != tt.wantUsed {
				t.Errorf("TotalUsed = %v, want %v", a.TotalUsed, tt.wantUsed)
			}
			if a.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", a.Valid, tt.wantValid)
			}
			if Round2(a.TotalUsed+a.TotalRemaining) != 100 {
				t.Errorf("TotalUsed + TotalRemaining = %v, want 100", a.TotalUsed+a.TotalRemaining)
			}
			if !reflect.DeepEqual(a.Errors, tt.wantErrs) {
				t.Errorf("Errors = %q, want %q", a.Errors, tt.wantErrs)
			}
		})
	}
}

func TestRecomputeIgnoresPreTestAndNestedWeights(t *testing.T) {
	tree := sampleTree()
	a := Recompute(tree)
	if a.TotalUsed != 100 || !a.Valid {
		t.Fatalf("TotalUsed = %v valid = %v, want 100 true", a.TotalUsed, a.Valid)
	}

	// Nested weights do not count toward the tree total.
	tree.Units[0].Lessons[0].Weight = 90
	if got := Recompute(tree).TotalUsed; got != 100 {
		t.Errorf("TotalUsed after nested edit = %v, want 100", got)
	}
}

func TestUnitStatus(t *testing.T) {
	tests := []struct {
		name          string
		unit          Unit
		wantConsumed  float64
		wantRemaining float64
		wantStatus    Status
	}{
		{
			name: "complete",
			unit: Unit{ID: "u", Weight: 20, Quiz: quiz("q", 5), Lessons: []Lesson{
				{ID: "a", Weight: 10}, {ID: "b", Weight: 5},
			}},
			wantConsumed: 20, wantRemaining: 0, wantStatus: StatusComplete,
		},
		{
			name: "exceeded",
			unit: Unit{ID: "u", Weight: 20, Quiz: quiz("q", 5), Lessons: []Lesson{
				{ID: "a", Weight: 10}, {ID: "b", Weight: 5}, {ID: "c", Weight: 1},
			}},
			wantConsumed: 21, wantRemaining: -1, wantStatus: StatusExceeded,
		},
		{
			name: "incomplete",
			unit: Unit{ID: "u", Weight: 20, Lessons: []Lesson{
				{ID: "a", Weight: 10, Quiz: quiz("aq", 2.5)},
			}},
			wantConsumed: 12.5, wantRemaining: 7.5, wantStatus: StatusIncomplete,
		},
		{
			name:         "empty unit with zero budget",
			unit:         Unit{ID: "u"},
			wantConsumed: 0, wantRemaining: 0, wantStatus: StatusComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Recompute(Tree{Units: []Unit{tt.unit}})
			ua, ok := a.Unit("u")
			if !ok {
				t.Fatal("unit allocation missing")
			}
			if ua.Consumed != tt.wantConsumed {
				t.Errorf("Consumed = %v, want %v", ua.Consumed, tt.wantConsumed)
			}
			if ua.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", ua.Remaining, tt.wantRemaining)
			}
			if ua.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", ua.Status, tt.wantStatus)
			}
		})
	}
}

func TestRecomputeIdempotentAndOrdered(t *testing.T) {
	tree := sampleTree()
	a1 := Recompute(tree)
	a2 := Recompute(tree)
	if !reflect.DeepEqual(a1, a2) {
		t.Fatal("Recompute is not idempotent")
	}
	for i, u := range tree.Units {
		if a1.Units[i].UnitID != u.ID {
			t.Errorf("Units[%d] = %s, want %s", i, a1.Units[i].UnitID, u.ID)
		}
	}
}

func TestMutatorsAreStructural(t *testing.T) {
	orig := sampleTree()
	snapshot := orig.Clone()

	tests := []struct {
		name string
		ref  NodeRef
	}{
		{"unit", UnitRef("u1")},
		{"unit quiz", UnitQuizRef("u1")},
		{"lesson", LessonRef("u1", "l2")},
		{"lesson quiz", LessonQuizRef("u3", "l3")},
		{"post-test", PostTestRef()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := orig.SetWeight(tt.ref, 7.25)
			if err != nil {
				t.Fatalf("SetWeight: %v", err)
			}
			got, ok := next.Weight(tt.ref)
			if !ok || got != 7.25 {
				t.Errorf("Weight = %v (ok=%v), want 7.25", got, ok)
			}
			if !reflect.DeepEqual(orig, snapshot) {
				t.Error("original tree was modified")
			}

			// Every other slot is unchanged and order is preserved.
			for _, ref := range orig.Refs() {
				if ref == tt.ref {
					continue
				}
				before, _ := orig.Weight(ref)
				after, _ := next.Weight(ref)
				if before != after {
					t.Errorf("%s changed from %v to %v", ref, before, after)
				}
			}
			if !reflect.DeepEqual(orig.Refs(), next.Refs()) {
				t.Error("node order changed")
			}
		})
	}
}

func TestMutatorsKeepIDsAndFixedFlags(t *testing.T) {
	orig := sampleTree()
	next, err := orig.SetUnitWeight("u2", 30)
	if err != nil {
		t.Fatalf("SetUnitWeight: %v", err)
	}
	u := next.Units[1]
	if u.ID != "u2" || !u.IsFixed || u.Title != "Decimals" {
		t.Errorf("unit metadata changed: %+v", u)
	}
}

func TestMutatorsMissingTargets(t *testing.T) {
	tree := sampleTree()
	refs := []NodeRef{
		UnitRef("nope"),
		UnitQuizRef("u2"),
		LessonRef("u1", "nope"),
		LessonQuizRef("u1", "l1"),
	}
	for _, ref := range refs {
		if _, err := tree.SetWeight(ref, 1); !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("SetWeight(%s) err = %v, want ErrNodeNotFound", ref, err)
		}
	}

	tree.PostTest = nil
	if _, err := tree.SetPostTestWeight(1); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("SetPostTestWeight err = %v, want ErrNodeNotFound", err)
	}
}

func TestDraftApply(t *testing.T) {
	d := NewDraft(sampleTree())
	if !d.Allocation.Valid {
		t.Fatal("sample draft should start valid")
	}

	d2, err := d.Apply(UnitRef("u1"), 25)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if d2.Allocation.TotalUsed != 105 || d2.Allocation.Valid {
		t.Errorf("TotalUsed = %v valid = %v, want 105 false", d2.Allocation.TotalUsed, d2.Allocation.Valid)
	}
	if d.Allocation.TotalUsed != 100 {
		t.Error("original draft allocation changed")
	}

	ua, _ := d2.Allocation.Unit("u1")
	if ua.Status != StatusIncomplete || ua.Remaining != 5 {
		t.Errorf("u1 = %+v, want incomplete with 5 remaining", ua)
	}

	if _, err := d.Apply(UnitRef("u2"), 10); !errors.Is(err, ErrFixedNode) {
		t.Errorf("Apply on fixed unit err = %v, want ErrFixedNode", err)
	}
	if _, err := d.Apply(UnitQuizRef("u4"), 10); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Apply on missing quiz err = %v, want ErrNodeNotFound", err)
	}
}

func TestCanSave(t *testing.T) {
	tree := Tree{Units: []Unit{
		{ID: "a", Weight: 30}, {ID: "b", Weight: 30}, {ID: "c", Weight: 30},
	}}
	g := CanSave(tree)
	if g.OK {
		t.Fatal("gate passed for a 90% tree")
	}
	if len(g.Reasons) != 1 || g.Reasons[0] != "incomplete, below 100% (90%)" {
		t.Errorf("Reasons = %q", g.Reasons)
	}
	var gateErr *GateError
	if !errors.As(g.Err(), &gateErr) {
		t.Fatalf("Err() = %v, want *GateError", g.Err())
	}
	if gateErr.Delta() != -10 {
		t.Errorf("Delta() = %v, want -10", gateErr.Delta())
	}

	tree.PostTest = &PostTest{ID: "p", Weight: 10}
	if g := CanSave(tree); !g.OK || g.Err() != nil {
		t.Errorf("gate = %+v, want OK", g)
	}
}

func TestEvenShares(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{0, nil},
		{1, []float64{100}},
		{4, []float64{25, 25, 25, 25}},
		{5, []float64{20, 20, 20, 20, 20}},
		{3, []float64{33.33, 33.33, 33.34}},
		{7, []float64{14.28, 14.28, 14.28, 14.29, 14.29, 14.29, 14.29}},
	}
	for _, tt := range tests {
		got := EvenShares(tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("EvenShares(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestDistribute(t *testing.T) {
	tree := sampleTree()
	tree.Units[0].Weight = 70
	tree.PostTest.Weight = 3

	out := Distribute(tree)
	for _, ref := range Buckets(out) {
		if w, _ := out.Weight(ref); w != 20 {
			t.Errorf("%s = %v, want 20", ref, w)
		}
	}
	// Nested weights are untouched.
	if w, _ := out.Weight(LessonRef("u1", "l1")); w != 10 {
		t.Errorf("lesson weight = %v, want 10", w)
	}
	if tree.Units[0].Weight != 70 {
		t.Error("input tree was modified")
	}
	if !Recompute(out).Valid {
		t.Error("distributed tree is not valid")
	}
}

func TestDistributeNestedFillsUnits(t *testing.T) {
	out := DistributeNested(sampleTree())
	a := Recompute(out)
	if !a.Valid {
		t.Fatalf("tree invalid after nested distribute: %v", a.Errors)
	}
	for _, ua := range a.Units {
		if ua.UnitID == "u2" || ua.UnitID == "u4" {
			continue // no children
		}
		if ua.Status != StatusComplete {
			t.Errorf("unit %s status = %s, want complete", ua.UnitID, ua.Status)
		}
	}
	// u1: quiz + 2 lessons share 20.
	if w, _ := out.Weight(UnitQuizRef("u1")); w != 6.66 {
		t.Errorf("u1 quiz = %v, want 6.66", w)
	}
}

func TestCommitPercent(t *testing.T) {
	tests := []struct {
		draft string
		want  float64
	}{
		{"50", 50},
		{"33.5", 33.5},
		{"12.346", 12.35},
		{"150", 100},
		{"-5", 0},
		{"abc", 0},
		{"", 0},
		{".", 0},
		{"7.", 7},
		{".25", 0.25},
	}
	for _, tt := range tests {
		if got := CommitPercent(tt.draft, 0, 100); got != tt.want {
			t.Errorf("CommitPercent(%q) = %v, want %v", tt.draft, got, tt.want)
		}
	}

	if got := CommitPercent("abc", 10, 90); got != 10 {
		t.Errorf("unparsable with min 10 = %v, want 10", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{
		50:     "50",
		33.5:   "33.5",
		12.25:  "12.25",
		0:      "0",
		100:    "100",
		99.999: "100",
	}
	for in, want := range tests {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestAcceptsDraft(t *testing.T) {
	for _, s := range []string{"", "1", "12.", ".5", "100.00"} {
		if !AcceptsDraft(s) {
			t.Errorf("AcceptsDraft(%q) = false", s)
		}
	}
	for _, s := range []string{"-1", "1.2.3", "a", "1e5", " 1"} {
		if AcceptsDraft(s) {
			t.Errorf("AcceptsDraft(%q) = true", s)
		}
	}
}

func TestIDAcceptsNumbers(t *testing.T) {
	var u Unit
	if err := json.Unmarshal([]byte(`{"id": 42, "weight": 10, "lessons": [{"id": "x"}]}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "42" || u.Lessons[0].ID != "x" {
		t.Errorf("ids = %q, %q", u.ID, u.Lessons[0].ID)
	}
	if u.Quiz != nil {
		t.Error("absent quiz decoded as non-nil")
	}
}

func ptr[T any](v T) *T { return &v }

func TestCloneEncodesEmptyUnitList(t *testing.T) {
	tree := Tree{PostTest: &PostTest{ID: "p", Weight: 100}}

	data, err := json.Marshal(tree.Clone())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if got := string(raw["big_lessons"]); got != "[]" {
		t.Errorf("big_lessons = %s, want []", got)
	}
	if !Recompute(tree).Valid {
		t.Error("post-test at 100 with no units should be valid")
	}
}

func TestPreTestLabel(t *testing.T) {
	if got := (Tree{}).PreTestLabel(); got != "" {
		t.Errorf("no pre-test: got %q", got)
	}
	if got := (Tree{PreTest: &PreTest{ID: "p"}}).PreTestLabel(); got != "Pre-test" {
		t.Errorf("untitled: got %q", got)
	}
	if got := (Tree{PreTest: &PreTest{ID: "p", Title: "Warmup"}}).PreTestLabel(); got != "Warmup" {
		t.Errorf("titled: got %q", got)
	}
}

func TestLabel(t *testing.T) {
	tr := sampleTree()
	tr.Units[3].Title = ""
	tr.Units[0].Lessons[1].Title = ""

	tests := []struct {
		ref  NodeRef
		want string
	}{
		{UnitRef("u1"), "Fractions"},
		{UnitQuizRef("u1"), "Quiz u1q"},
		{LessonRef("u1", "l2"), "Lesson l2"},
		{LessonQuizRef("u3", "l3"), "Quiz l3q"},
		{UnitRef("u4"), "Unit u4"},
		{PostTestRef(), "Final"},
		{UnitQuizRef("u2"), "unit quiz u2"},
		{UnitRef("nope"), "unit nope"},
	}
	for _, tt := range tests {
		if got := tr.Label(tt.ref); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.ref, got, tt.want)
		}
	}

	if d := KindLessonQuiz.Depth(); d != 2 {
		t.Errorf("KindLessonQuiz.Depth() = %d", d)
	}
}
