package gradesync

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/weights"
)

type fakeBackend struct {
	mu         sync.Mutex
	credential bool
	tree       weights.Tree
	passing    float64
	calls      map[string]int
	saved      []weights.Tree

	scoresHook func(ctx context.Context) (*api.ScoresResponse, error)
	saveErr    error
	distErr    error
	passErr    error
}

func newFakeBackend(tree weights.Tree) *fakeBackend {
	return &fakeBackend{credential: true, tree: tree, passing: 50, calls: map[string]int{}}
}

func (f *fakeBackend) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) HasCredential() bool { return f.credential }

func (f *fakeBackend) Scores(ctx context.Context, subjectID string) (*api.ScoresResponse, error) {
	f.count("scores")
	if f.scoresHook != nil {
		return f.scoresHook(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.ScoresResponse{
		Envelope:       api.Envelope{Success: true},
		ScoreStructure: f.tree.Clone(),
		Subject:        api.SubjectInfo{ID: weights.ID(subjectID), Name: "Algebra", PassingPercentage: f.passing},
	}, nil
}

func (f *fakeBackend) SaveHierarchical(ctx context.Context, subjectID string, t weights.Tree) error {
	f.count("save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, t)
	f.tree = t
	return nil
}

func (f *fakeBackend) AutoDistribute(ctx context.Context, subjectID string) error {
	f.count("distribute")
	if f.distErr != nil {
		return f.distErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tree = weights.DistributeNested(f.tree)
	return nil
}

func (f *fakeBackend) UpdatePassingCriteria(ctx context.Context, subjectID string, pct float64) error {
	f.count("passing")
	if f.passErr != nil {
		return f.passErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passing = pct
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []store.SyncEventData
}

func (m *memEvents) AppendSyncEvent(ctx context.Context, data store.SyncEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}

func (m *memEvents) QuerySyncEvents(ctx context.Context, opts store.QueryOpts) ([]store.SyncEventRecord, error) {
	return nil, nil
}

func validTree() weights.Tree {
	return weights.Tree{
		Units: []weights.Unit{
			{ID: "u1", Weight: 40, Quiz: &weights.Quiz{ID: "q1", Weight: 10},
				Lessons: []weights.Lesson{{ID: "l1", Weight: 30}}},
			{ID: "u2", Weight: 40, Lessons: []weights.Lesson{{ID: "l2", Weight: 40, IsFixed: true}}},
		},
		PostTest: &weights.PostTest{ID: "post", Weight: 20},
	}
}

func newLoadedAdapter(t *testing.T, b *fakeBackend, opts ...Option) (*Adapter, *NoticeLog) {
	t.Helper()
	notices := &NoticeLog{}
	a := New(b, "s1", append([]Option{WithNotifier(notices)}, opts...)...)
	require.NoError(t, a.Load(context.Background()))
	return a, notices
}

func TestLoad(t *testing.T) {
	b := newFakeBackend(validTree())
	a := New(b, "s1")
	assert.Equal(t, StateIdle, a.Snapshot().State)

	require.NoError(t, a.Load(context.Background()))

	snap := a.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.True(t, snap.Loaded)
	assert.Equal(t, 50.0, snap.Passing)
	assert.Equal(t, "Algebra", snap.SubjectName)
	assert.True(t, snap.Draft.Allocation.Valid)
}

func TestLoadWithoutCredentialMakesNoRequest(t *testing.T) {
	b := newFakeBackend(validTree())
	b.credential = false
	notices := &NoticeLog{}
	a := New(b, "s1", WithNotifier(notices))

	err := a.Load(context.Background())
	assert.ErrorIs(t, err, api.ErrNoCredential)

	snap := a.Snapshot()
	assert.Equal(t, StateLoadError, snap.State)
	assert.True(t, snap.NeedsSignIn)
	assert.Zero(t, b.callCount("scores"))

	n, ok := notices.Latest()
	require.True(t, ok)
	assert.Equal(t, NoticeError, n.Level)
	assert.Contains(t, n.Text, "sign in")
}

func TestLoadFailureThenRetry(t *testing.T) {
	b := newFakeBackend(validTree())
	b.scoresHook = func(ctx context.Context) (*api.ScoresResponse, error) {
		return nil, &api.StatusError{Code: 500}
	}
	a := New(b, "s1")

	require.Error(t, a.Load(context.Background()))
	assert.Equal(t, StateLoadError, a.Snapshot().State)

	b.scoresHook = nil
	require.NoError(t, a.Load(context.Background()))
	assert.Equal(t, StateLoaded, a.Snapshot().State)
}

func TestSaveGateFailureMakesNoRequest(t *testing.T) {
	b := newFakeBackend(validTree())
	a, notices := newLoadedAdapter(t, b)

	_, err := a.Edit(weights.PostTestRef(), 10)
	require.NoError(t, err)

	err = a.Save(context.Background())
	var gate *weights.GateError
	require.ErrorAs(t, err, &gate)
	assert.Zero(t, b.callCount("save"))
	assert.Equal(t, StateLoaded, a.Snapshot().State, "gate refusal keeps the state")
	assert.Equal(t, 10.0, a.Snapshot().Draft.Tree.PostTest.Weight, "draft kept")

	n, _ := notices.Latest()
	assert.Equal(t, "Cannot save: weights total 90% (-10%)", n.Text)
}

func TestSaveWithoutCredentialMakesNoRequest(t *testing.T) {
	b := newFakeBackend(validTree())
	a, _ := newLoadedAdapter(t, b)
	b.credential = false

	assert.ErrorIs(t, a.Save(context.Background()), api.ErrNoCredential)
	assert.Zero(t, b.callCount("save"))
	assert.True(t, a.Snapshot().NeedsSignIn)
}

func TestSaveSuccessReloads(t *testing.T) {
	b := newFakeBackend(validTree())
	events := &memEvents{}
	a, notices := newLoadedAdapter(t, b, WithEventRepo(events))

	_, err := a.Edit(weights.UnitRef("u1"), 30)
	require.NoError(t, err)
	_, err = a.Edit(weights.PostTestRef(), 30)
	require.NoError(t, err)

	require.NoError(t, a.Save(context.Background()))

	require.Len(t, b.saved, 1)
	assert.Equal(t, 30.0, b.saved[0].Units[0].Weight)
	assert.Equal(t, 2, b.callCount("scores"), "initial load plus reload")
	assert.Equal(t, StateLoaded, a.Snapshot().State)

	texts := noticeTexts(notices)
	assert.Contains(t, texts, "Grading weights saved.")

	actions := make([]string, 0, len(events.events))
	for _, e := range events.events {
		actions = append(actions, e.Action)
		assert.NotEmpty(t, e.RequestID)
		assert.Equal(t, "s1", e.SubjectID)
	}
	assert.Equal(t, []string{ActionLoad, ActionSave, ActionLoad}, actions)
}

func TestSaveServerRejection(t *testing.T) {
	b := newFakeBackend(validTree())
	b.saveErr = &api.ValidationError{Message: "Unknown lesson id 77"}
	events := &memEvents{}
	a, notices := newLoadedAdapter(t, b, WithEventRepo(events))

	_, err := a.Edit(weights.UnitQuizRef("u1"), 5)
	require.NoError(t, err)
	_, err = a.Edit(weights.LessonRef("u1", "l1"), 35)
	require.NoError(t, err)

	err = a.Save(context.Background())
	var ve *api.ValidationError
	require.ErrorAs(t, err, &ve)

	snap := a.Snapshot()
	assert.Equal(t, StateSaveError, snap.State)
	assert.Equal(t, 35.0, snap.Draft.Tree.Units[0].Lessons[0].Weight, "draft survives a failed save")

	n, _ := notices.Latest()
	assert.Equal(t, "Unknown lesson id 77", n.Text)
	assert.Equal(t, 400, events.events[len(events.events)-1].StatusCode)

	// Retry from save_error is allowed.
	b.saveErr = nil
	require.NoError(t, a.Save(context.Background()))
	assert.Equal(t, StateLoaded, a.Snapshot().State)
}

func TestSaveRefusedWhileInFlight(t *testing.T) {
	b := newFakeBackend(validTree())
	a, _ := newLoadedAdapter(t, b)

	release := make(chan struct{})
	started := make(chan struct{})
	blocking := &blockingSave{fakeBackend: b, started: started, release: release}
	a.backend = blocking

	done := make(chan error, 1)
	go func() { done <- a.Save(context.Background()) }()
	<-started

	assert.Equal(t, StateSaving, a.Snapshot().State)
	assert.ErrorIs(t, a.Save(context.Background()), ErrBusy)
	assert.ErrorIs(t, a.AutoDistribute(context.Background(), true), ErrBusy)
	_, err := a.Edit(weights.UnitRef("u1"), 1)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, b.callCount("save"))
}

type blockingSave struct {
	*fakeBackend
	started chan struct{}
	release chan struct{}
}

func (b *blockingSave) SaveHierarchical(ctx context.Context, subjectID string, t weights.Tree) error {
	close(b.started)
	<-b.release
	return b.fakeBackend.SaveHierarchical(ctx, subjectID, t)
}

func TestSaveBeforeLoad(t *testing.T) {
	b := newFakeBackend(validTree())
	a := New(b, "s1")
	assert.ErrorIs(t, a.Save(context.Background()), ErrNotLoaded)
	assert.Zero(t, b.callCount("save"))
}

func TestAutoDistributeDeclined(t *testing.T) {
	b := newFakeBackend(validTree())
	a, notices := newLoadedAdapter(t, b)
	before := a.Snapshot()

	assert.ErrorIs(t, a.AutoDistribute(context.Background(), false), ErrDeclined)
	assert.Zero(t, b.callCount("distribute"))
	assert.Equal(t, before, a.Snapshot())
	assert.Empty(t, notices.Notices())
}

func TestAutoDistributeConfirmed(t *testing.T) {
	tree := validTree()
	tree.Units = append(tree.Units, weights.Unit{ID: "u3"}, weights.Unit{ID: "u4"})
	b := newFakeBackend(tree)
	a, _ := newLoadedAdapter(t, b)

	require.NoError(t, a.AutoDistribute(context.Background(), true))

	snap := a.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	for _, u := range snap.Draft.Tree.Units {
		assert.Equal(t, 20.0, u.Weight)
	}
	assert.Equal(t, 20.0, snap.Draft.Tree.PostTest.Weight)
	assert.True(t, snap.Draft.Allocation.Valid)
}

func TestAutoDistributeFailureKeepsState(t *testing.T) {
	b := newFakeBackend(validTree())
	b.distErr = &api.StatusError{Code: 403}
	a, notices := newLoadedAdapter(t, b)

	_, err := a.Edit(weights.UnitRef("u1"), 35)
	require.NoError(t, err)

	err = a.AutoDistribute(context.Background(), true)
	assert.ErrorIs(t, err, api.ErrForbidden)

	snap := a.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, 35.0, snap.Draft.Tree.Units[0].Weight)
	assert.Equal(t, 1, b.callCount("scores"), "no reload after failure")

	n, _ := notices.Latest()
	assert.Equal(t, "You do not have permission to change grading weights.", n.Text)
}

func TestUpdatePassingThreshold(t *testing.T) {
	b := newFakeBackend(validTree())
	a, notices := newLoadedAdapter(t, b)

	var rangeErr *RangeError
	require.ErrorAs(t, a.UpdatePassingThreshold(context.Background(), 101), &rangeErr)
	require.ErrorAs(t, a.UpdatePassingThreshold(context.Background(), -1), &rangeErr)
	assert.Zero(t, b.callCount("passing"))

	require.NoError(t, a.UpdatePassingThreshold(context.Background(), 65.5))
	assert.Equal(t, 65.5, a.Snapshot().Passing)
	assert.Equal(t, StateLoaded, a.Snapshot().State)

	n, _ := notices.Latest()
	assert.Equal(t, "Passing threshold set to 65.5%.", n.Text)

	b.passErr = api.ErrUnauthorized
	err := a.UpdatePassingThreshold(context.Background(), 70)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 65.5, a.Snapshot().Passing)
	assert.True(t, a.Snapshot().NeedsSignIn)
}

func TestUpdatePassingThresholdRejectsNaN(t *testing.T) {
	b := newFakeBackend(validTree())
	events := &memEvents{}
	a, notices := newLoadedAdapter(t, b, WithEventRepo(events))
	loadEvents := len(events.events)

	var rangeErr *RangeError
	require.ErrorAs(t, a.UpdatePassingThreshold(context.Background(), math.NaN()), &rangeErr)
	assert.Zero(t, b.callCount("passing"))
	assert.Len(t, events.events, loadEvents, "nothing was sent, so nothing is recorded")

	n, _ := notices.Latest()
	assert.Equal(t, NoticeError, n.Level)
	assert.NotEqual(t, "Request failed. Please try again.", n.Text)
}

func TestSaveAllowedAfterFailedReload(t *testing.T) {
	b := newFakeBackend(validTree())
	a, _ := newLoadedAdapter(t, b)

	_, err := a.Edit(weights.UnitRef("u1"), 30)
	require.NoError(t, err)
	_, err = a.Edit(weights.PostTestRef(), 30)
	require.NoError(t, err)

	b.scoresHook = func(ctx context.Context) (*api.ScoresResponse, error) {
		return nil, errors.New("connection reset")
	}
	assert.Error(t, a.Save(context.Background()))
	snap := a.Snapshot()
	assert.Equal(t, StateLoadError, snap.State)
	assert.True(t, snap.Loaded)

	b.scoresHook = nil
	_, err = a.Edit(weights.UnitRef("u1"), 35)
	require.NoError(t, err)
	_, err = a.Edit(weights.PostTestRef(), 25)
	require.NoError(t, err)

	require.NoError(t, a.Save(context.Background()))
	assert.Equal(t, 2, b.callCount("save"))
	assert.Equal(t, StateLoaded, a.Snapshot().State)
	assert.Equal(t, 35.0, b.tree.Units[0].Weight)
}

func TestSaveBeforeAnySuccessfulLoad(t *testing.T) {
	b := newFakeBackend(validTree())
	b.scoresHook = func(ctx context.Context) (*api.ScoresResponse, error) {
		return nil, errors.New("connection reset")
	}
	a := New(b, "s1")
	require.Error(t, a.Load(context.Background()))

	assert.ErrorIs(t, a.Save(context.Background()), ErrNotLoaded)
	assert.Zero(t, b.callCount("save"))
}

func TestEditRejectsFixedNodes(t *testing.T) {
	b := newFakeBackend(validTree())
	a, _ := newLoadedAdapter(t, b)

	_, err := a.Edit(weights.LessonRef("u2", "l2"), 10)
	assert.ErrorIs(t, err, weights.ErrFixedNode)
	assert.Equal(t, 40.0, a.Snapshot().Draft.Tree.Units[1].Lessons[0].Weight)
}

func TestEditBeforeLoad(t *testing.T) {
	a := New(newFakeBackend(validTree()), "s1")
	_, err := a.Edit(weights.UnitRef("u1"), 10)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStaleLoadAfterClose(t *testing.T) {
	b := newFakeBackend(validTree())
	release := make(chan struct{})
	started := make(chan struct{})
	b.scoresHook = func(ctx context.Context) (*api.ScoresResponse, error) {
		close(started)
		<-release
		return &api.ScoresResponse{ScoreStructure: validTree()}, nil
	}
	a := New(b, "s1")

	done := make(chan error, 1)
	go func() { done <- a.Load(context.Background()) }()
	<-started
	a.Close()
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.False(t, a.Snapshot().Loaded)
	assert.ErrorIs(t, a.Load(context.Background()), ErrClosed)
}

func TestSupersededLoadIsDropped(t *testing.T) {
	b := newFakeBackend(validTree())

	first := validTree()
	first.Units[0].Weight = 1
	second := validTree()

	release := make(chan struct{})
	started := make(chan struct{})
	var n int
	var mu sync.Mutex
	b.scoresHook = func(ctx context.Context) (*api.ScoresResponse, error) {
		mu.Lock()
		n++
		call := n
		mu.Unlock()
		if call == 1 {
			close(started)
			<-release
			return &api.ScoresResponse{ScoreStructure: first}, nil
		}
		return &api.ScoresResponse{ScoreStructure: second}, nil
	}
	a := New(b, "s1")

	done := make(chan error, 1)
	go func() { done <- a.Load(context.Background()) }()
	<-started

	require.NoError(t, a.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, 40.0, a.Snapshot().Draft.Tree.Units[0].Weight, "older response must not overwrite newer")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{api.ErrNoCredential, "Please sign in to edit grading weights."},
		{&api.StatusError{Code: 401}, "Your session has expired. Please sign in again."},
		{&api.StatusError{Code: 404}, "Subject not found."},
		{&api.ValidationError{}, "The server rejected the change."},
		{&weights.GateError{Total: 100.01}, "Cannot save: weights total 100.01% (+0.01%)"},
		{context.DeadlineExceeded, "The request timed out. Please try again."},
		{errors.New("connection refused"), "Request failed. Please try again."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.err))
	}

	assert.True(t, NeedsSignIn(&api.StatusError{Code: 401}))
	assert.False(t, NeedsSignIn(&api.StatusError{Code: 403}))
}

func noticeTexts(l *NoticeLog) []string {
	var out []string
	for _, n := range l.Notices() {
		out = append(out, n.Text)
	}
	return out
}
