package editor

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/screens/passing"
	"github.com/abhisek/gradewise/internal/ui/layout"
	"github.com/abhisek/gradewise/internal/weights"
)

type fakeBackend struct {
	mu         sync.Mutex
	credential bool
	tree       weights.Tree
	saves      int
	distribute int
}

func (f *fakeBackend) HasCredential() bool { return f.credential }

func (f *fakeBackend) Scores(_ context.Context, subjectID string) (*api.ScoresResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.ScoresResponse{
		Envelope:       api.Envelope{Success: true},
		ScoreStructure: f.tree.Clone(),
		Subject:        api.SubjectInfo{ID: weights.ID(subjectID), Name: "Algebra", PassingPercentage: 60},
	}, nil
}

func (f *fakeBackend) SaveHierarchical(_ context.Context, _ string, t weights.Tree) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.tree = t
	return nil
}

func (f *fakeBackend) AutoDistribute(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.distribute++
	f.tree = weights.DistributeNested(f.tree)
	return nil
}

func (f *fakeBackend) UpdatePassingCriteria(context.Context, string, float64) error {
	return nil
}

// fixture: u1 (50) = quiz 10 + fixed lesson 40, u2 (30) = lesson 30, post-test 20.
func fixture() weights.Tree {
	return weights.Tree{
		Units: []weights.Unit{
			{
				ID: "u1", Title: "Linear equations", Weight: 50,
				Quiz:    &weights.Quiz{ID: "q1", Weight: 10},
				Lessons: []weights.Lesson{{ID: "l1", Title: "Slopes", Weight: 40, IsFixed: true}},
			},
			{
				ID: "u2", Title: "Quadratics", Weight: 30,
				Lessons: []weights.Lesson{{ID: "l2", Title: "Roots", Weight: 30}},
			},
		},
		PostTest: &weights.PostTest{ID: "pt", Weight: 20},
	}
}

func newLoadedEditor(t *testing.T, backend *fakeBackend) (*EditorScreen, *gradesync.NoticeLog) {
	t.Helper()
	notices := &gradesync.NoticeLog{}
	adapter := gradesync.New(backend, "algebra", gradesync.WithNotifier(notices))
	s := New(adapter, notices, nil)
	run(s, s.Init())
	require.True(t, s.snap.Loaded)
	return s, notices
}

// run executes cmd and feeds its message back into the screen.
func run(s *EditorScreen, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := s.Update(cmd())
	return next
}

func press(s *EditorScreen, key string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch key {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		r := []rune(key)[0]
		msg = tea.KeyPressMsg{Code: r, Text: key}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func selectRow(t *testing.T, s *EditorScreen, ref weights.NodeRef) {
	t.Helper()
	for i, r := range s.rows {
		if r.ref == ref {
			s.selected = i
			return
		}
	}
	t.Fatalf("row %v not found", ref)
}

func TestEditorLoadBuildsRows(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})

	require.Len(t, s.rows, 6)
	assert.Equal(t, "Linear equations", s.rows[0].label)
	assert.Equal(t, "Unit quiz", s.rows[1].label)
	assert.True(t, s.rows[2].fixed)
	assert.Equal(t, 1, s.rows[2].indent)
	assert.Equal(t, "Post-test", s.rows[5].label)
	assert.Equal(t, layout.Status{Text: "Algebra  100%", Tone: layout.ToneComplete}, s.Status())

	view := s.View(100, 30)
	assert.Contains(t, view, "Quadratics")
	assert.Contains(t, view, "Passing threshold 60%")
}

func TestEditorEditCommitsIntoDraft(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})
	selectRow(t, s, weights.LessonRef("u2", "l2"))

	press(s, "enter")
	require.True(t, s.editing)
	s.field.Model.SetValue("")
	press(s, "2")
	press(s, "5")
	run(s, press(s, "enter"))

	assert.False(t, s.editing)
	w, ok := s.snap.Draft.Tree.Weight(weights.LessonRef("u2", "l2"))
	require.True(t, ok)
	assert.Equal(t, 25.0, w)

	ua, ok := s.snap.Draft.Allocation.Unit("u2")
	require.True(t, ok)
	assert.Equal(t, weights.StatusIncomplete, ua.Status)
	assert.Equal(t, 5.0, ua.Remaining)
}

func TestEditorEscapeCommitsField(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})
	selectRow(t, s, weights.UnitRef("u2"))

	press(s, "enter")
	s.field.Model.SetValue("20")
	run(s, press(s, "esc"))

	assert.False(t, s.editing)
	assert.Equal(t, 90.0, s.snap.Draft.Allocation.TotalUsed)
	assert.Contains(t, s.View(100, 30), "incomplete, below 100% (90%)")
}

func TestEditorFixedRowIsNotEditable(t *testing.T) {
	s, notices := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})
	selectRow(t, s, weights.LessonRef("u1", "l1"))

	press(s, "enter")

	assert.False(t, s.editing)
	n, ok := notices.Latest()
	require.True(t, ok)
	assert.Equal(t, gradesync.NoticeError, n.Level)
	assert.Equal(t, "This weight is fixed and cannot be changed.", n.Text)
}

func TestEditorShowsPreTestReadOnly(t *testing.T) {
	tree := fixture()
	tree.PreTest = &weights.PreTest{ID: "pre", Title: "Diagnostic"}
	s, notices := newLoadedEditor(t, &fakeBackend{credential: true, tree: tree})

	require.Len(t, s.rows, 7)
	assert.True(t, s.rows[0].preTest)
	assert.Equal(t, "Diagnostic", s.rows[0].label)
	assert.Contains(t, s.View(100, 30), "not graded")

	s.selected = 0
	press(s, "enter")

	assert.False(t, s.editing)
	n, ok := notices.Latest()
	require.True(t, ok)
	assert.Equal(t, gradesync.NoticeInfo, n.Level)
	assert.Equal(t, preTestNotice, n.Text)
	assert.Equal(t, 100.0, s.snap.Draft.Allocation.TotalUsed)
}

func TestEditorSaveRefusedByGate(t *testing.T) {
	backend := &fakeBackend{credential: true, tree: fixture()}
	s, notices := newLoadedEditor(t, backend)
	selectRow(t, s, weights.UnitRef("u2"))

	press(s, "enter")
	s.field.Model.SetValue("20")
	run(s, press(s, "enter"))
	run(s, press(s, "s"))

	assert.Equal(t, 0, backend.saves)
	n, ok := notices.Latest()
	require.True(t, ok)
	assert.Equal(t, "Cannot save: weights total 90% (-10%)", n.Text)
	assert.Contains(t, s.View(100, 30), n.Text)
}

func TestEditorSaveValidDraft(t *testing.T) {
	backend := &fakeBackend{credential: true, tree: fixture()}
	s, notices := newLoadedEditor(t, backend)

	run(s, press(s, "s"))

	assert.Equal(t, 1, backend.saves)
	assert.Equal(t, gradesync.StateLoaded, s.snap.State)
	n, _ := notices.Latest()
	assert.Equal(t, "Grading weights saved.", n.Text)
}

func TestEditorAutoDistributeNeedsConfirmation(t *testing.T) {
	backend := &fakeBackend{credential: true, tree: fixture()}
	s, notices := newLoadedEditor(t, backend)

	press(s, "a")
	require.True(t, s.confirming)
	assert.Contains(t, s.View(100, 30), confirmPrompt)

	press(s, "n")
	assert.False(t, s.confirming)
	assert.Equal(t, 0, backend.distribute)
	n, _ := notices.Latest()
	assert.Equal(t, "Auto-distribute cancelled.", n.Text)

	press(s, "a")
	run(s, press(s, "y"))
	assert.Equal(t, 1, backend.distribute)
	n, _ = notices.Latest()
	assert.Equal(t, "Weights distributed evenly.", n.Text)

	u1, _ := s.snap.Draft.Tree.Weight(weights.UnitRef("u1"))
	pt, _ := s.snap.Draft.Tree.Weight(weights.PostTestRef())
	assert.Equal(t, 33.33, u1)
	assert.Equal(t, 33.34, pt)
}

func TestEditorPassingOpensScreen(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})

	cmd := press(s, "p")
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &passing.PassingScreen{}, msg.Screen)
}

func TestEditorHistoryHiddenWithoutEvents(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})

	assert.Nil(t, press(s, "h"))
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "h", h.Key)
	}
}

func TestEditorSignInRequired(t *testing.T) {
	notices := &gradesync.NoticeLog{}
	adapter := gradesync.New(&fakeBackend{tree: fixture()}, "algebra", gradesync.WithNotifier(notices))
	s := New(adapter, notices, nil)
	run(s, s.Init())

	view := s.View(100, 30)
	assert.Contains(t, view, "Please sign in to edit grading weights.")
	assert.Contains(t, view, "GRADEWISE_TOKEN")
	assert.Equal(t, layout.Status{Text: "algebra"}, s.Status())
}

func TestEditorNavigationClamps(t *testing.T) {
	s, _ := newLoadedEditor(t, &fakeBackend{credential: true, tree: fixture()})

	press(s, "k")
	assert.Equal(t, 0, s.selected)
	for i := 0; i < 10; i++ {
		press(s, "down")
	}
	assert.Equal(t, len(s.rows)-1, s.selected)
}
