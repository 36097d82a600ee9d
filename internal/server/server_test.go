package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/weights"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memRepo struct {
	mu       sync.Mutex
	subjects map[string]store.Subject
}

func newMemRepo() *memRepo {
	return &memRepo{subjects: map[string]store.Subject{}}
}

func (r *memRepo) Get(ctx context.Context, id string) (*store.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return nil, store.ErrSubjectNotFound
	}
	s.Tree = s.Tree.Clone()
	return &s, nil
}

func (r *memRepo) Save(ctx context.Context, s *store.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Tree = s.Tree.Clone()
	r.subjects[s.ID] = cp
	return nil
}

func (r *memRepo) List(ctx context.Context) ([]store.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]store.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, s)
	}
	return out, nil
}

const testSecret = "test-secret-123"

func sampleSubject() store.Subject {
	return store.Subject{
		ID:                "s1",
		Name:              "Algebra",
		PassingPercentage: 60,
		Tree: weights.Tree{
			Units: []weights.Unit{
				{ID: "u1", Weight: 50, Quiz: &weights.Quiz{ID: "q1", Weight: 10},
					Lessons: []weights.Lesson{{ID: "l1", Weight: 40, Quiz: &weights.Quiz{ID: "lq1", Weight: 0}}}},
				{ID: "u2", Weight: 30, IsFixed: true, Lessons: []weights.Lesson{{ID: "l2", Weight: 30}}},
			},
			PostTest: &weights.PostTest{ID: "post", Weight: 20},
		},
	}
}

type fixture struct {
	repo   *memRepo
	srv    *Server
	admin  string
	viewer string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	tm := NewTokenManager(testSecret)
	srv := New(repo, tm, nil)
	require.NoError(t, srv.Seed(context.Background(), []store.Subject{sampleSubject()}))

	admin, err := tm.Issue("alice", RoleAdmin, time.Hour)
	require.NoError(t, err)
	viewer, err := tm.Issue("bob", RoleViewer, time.Hour)
	require.NoError(t, err)
	return &fixture{repo: repo, srv: srv, admin: admin, viewer: viewer}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, api.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)

	var env api.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func updateFor(t weights.Tree) api.HierarchicalUpdate {
	return api.NewHierarchicalUpdate(t)
}

func TestAuth(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/subjects/s1/scores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/subjects/s1/scores", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := NewTokenManager("another-secret").Issue("eve", RoleAdmin, time.Hour)
	require.NoError(t, err)
	rec, _ = f.do(t, http.MethodGet, "/subjects/s1/scores", other, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := NewTokenManager(testSecret).Issue("alice", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	rec, _ = f.do(t, http.MethodGet, "/subjects/s1/scores", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/subjects/s1/scores", f.viewer, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "viewers may read")

	rec, env := f.do(t, http.MethodPost, "/subjects/s1/auto-distribute", f.viewer,
		api.AutoDistributeRequest{ResetBeforeDistribute: true, SubjectID: "s1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
}

func TestGetScores(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/subjects/s1/scores", f.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ScoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 60.0, resp.Subject.PassingPercentage)
	assert.Equal(t, sampleSubject().Tree, resp.ScoreStructure)

	rec, env := f.do(t, http.MethodGet, "/subjects/missing/scores", f.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Subject not found", env.Message)
}

func TestSaveHierarchical(t *testing.T) {
	f := newFixture(t)

	tree := sampleSubject().Tree
	tree.Units[0].Weight = 60
	tree.Units[0].Lessons[0].Weight = 50
	tree.PostTest.Weight = 10

	rec, env := f.do(t, http.MethodPut, "/subjects/s1/scores-hierarchical", f.admin, updateFor(tree))
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	assert.True(t, env.Success)

	stored, err := f.repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, stored.Tree.Units[0].Weight)
	assert.Equal(t, 50.0, stored.Tree.Units[0].Lessons[0].Weight)
	assert.Equal(t, 10.0, stored.Tree.PostTest.Weight)
}

func TestSaveHierarchicalRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*weights.Tree)
		wantMsg string
	}{
		{"total below 100", func(t *weights.Tree) { t.PostTest.Weight = 10 }, "total weight must equal 100% (currently 90%)"},
		{"total above 100", func(t *weights.Tree) { t.PostTest.Weight = 20.01 }, "total weight must equal 100% (currently 100.01%)"},
		{"unknown unit", func(t *weights.Tree) { t.Units[0].ID = "nope" }, "unknown unit id nope"},
		{"unknown lesson", func(t *weights.Tree) { t.Units[0].Lessons[0].ID = "nope" }, "unknown lesson id nope in unit u1"},
		{"out of range", func(t *weights.Tree) { t.Units[0].Quiz.Weight = 120 }, "quiz q1: weight 120 is outside 0-100"},
		{"fixed changed", func(t *weights.Tree) { t.Units[1].Weight = 20; t.PostTest.Weight = 30 }, "unit u2 is fixed and cannot be changed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tree := sampleSubject().Tree
			tt.mutate(&tree)

			rec, env := f.do(t, http.MethodPut, "/subjects/s1/scores-hierarchical", f.admin, updateFor(tree))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)

			stored, err := f.repo.Get(context.Background(), "s1")
			require.NoError(t, err)
			assert.Equal(t, sampleSubject().Tree, stored.Tree, "rejected update must not be stored")
		})
	}
}

func TestAutoDistribute(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/subjects/s1/auto-distribute", f.admin,
		api.AutoDistributeRequest{ResetBeforeDistribute: true, SubjectID: "s1"})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	stored, err := f.repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	a := weights.Recompute(stored.Tree)
	assert.True(t, a.Valid)
	assert.Equal(t, []float64{33.33, 33.33}, []float64{stored.Tree.Units[0].Weight, stored.Tree.Units[1].Weight})
	assert.Equal(t, 33.34, stored.Tree.PostTest.Weight)
	for _, u := range a.Units {
		assert.Equal(t, weights.StatusComplete, u.Status, "unit %s", u.UnitID)
	}

	rec, _ = f.do(t, http.MethodPost, "/subjects/s1/auto-distribute", f.admin,
		api.AutoDistributeRequest{ResetBeforeDistribute: true, SubjectID: "other"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePassingCriteria(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPut, "/subjects/s1/passing-criteria", f.admin,
		api.PassingCriteriaRequest{PassingPercentage: 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := f.do(t, http.MethodPut, "/subjects/s1/passing-criteria", f.admin,
		api.PassingCriteriaRequest{PassingPercentage: 72.5})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	stored, err := f.repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 72.5, stored.PassingPercentage)
	assert.Equal(t, sampleSubject().Tree, stored.Tree)
}

func TestClientAgainstServer(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.srv.Handler())
	t.Cleanup(ts.Close)

	c := api.NewClient(ts.URL, api.WithToken(f.admin))
	ctx := context.Background()

	resp, err := c.Scores(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, weights.Recompute(resp.ScoreStructure).Valid)

	bad := resp.ScoreStructure.Clone()
	bad.PostTest.Weight = 0
	err = c.SaveHierarchical(ctx, "s1", bad)
	var ve *api.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "currently 80%")

	require.NoError(t, c.AutoDistribute(ctx, "s1"))
	require.NoError(t, c.UpdatePassingCriteria(ctx, "s1", 55))

	resp, err = c.Scores(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 55.0, resp.Subject.PassingPercentage)
	assert.Equal(t, 33.34, resp.ScoreStructure.PostTest.Weight)

	viewer := api.NewClient(ts.URL, api.WithToken(f.viewer))
	assert.ErrorIs(t, viewer.AutoDistribute(ctx, "s1"), api.ErrForbidden)
}

func TestClientLoadsSubjectWithoutUnits(t *testing.T) {
	f := newFixture(t)
	empty := store.Subject{
		ID:   "s2",
		Name: "Orientation",
		Tree: weights.Tree{PostTest: &weights.PostTest{ID: "p", Weight: 100}},
	}
	require.NoError(t, f.srv.Seed(context.Background(), []store.Subject{empty}))

	ts := httptest.NewServer(f.srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := api.NewClient(ts.URL, api.WithToken(f.admin)).Scores(context.Background(), "s2")
	require.NoError(t, err)
	assert.Empty(t, resp.ScoreStructure.Units)
	require.NotNil(t, resp.ScoreStructure.PostTest)
	assert.True(t, weights.Recompute(resp.ScoreStructure).Valid)

	rec, _ := f.do(t, http.MethodGet, "/subjects/s2/scores", f.admin, nil)
	assert.Contains(t, rec.Body.String(), `"big_lessons":[]`)
}
