package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/store"
)

type fakeEvents struct {
	events []store.SyncEventRecord
	err    error
	opts   store.QueryOpts
}

func (f *fakeEvents) AppendSyncEvent(context.Context, store.SyncEventData) error { return nil }

func (f *fakeEvents) QuerySyncEvents(_ context.Context, opts store.QueryOpts) ([]store.SyncEventRecord, error) {
	f.opts = opts
	return f.events, f.err
}

func record(seq int64, action string, ok bool, msg string) store.SyncEventRecord {
	return store.SyncEventRecord{
		SyncEventData: store.SyncEventData{
			RequestID:    "req-" + action,
			SubjectID:    "algebra",
			Action:       action,
			Success:      ok,
			StatusCode:   200,
			LatencyMs:    42,
			ErrorMessage: msg,
		},
		Sequence:  seq,
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistoryListsSubjectEvents(t *testing.T) {
	repo := &fakeEvents{events: []store.SyncEventRecord{
		record(2, "save", false, "total weight must equal 100%"),
		record(1, "load", true, ""),
	}}
	s := New(repo, "algebra")
	load(t, s)

	assert.Equal(t, "algebra", repo.opts.SubjectID)
	assert.Equal(t, pageSize, repo.opts.Limit)

	view := s.View(100, 30)
	assert.Contains(t, view, "save")
	assert.Contains(t, view, "failed")
	assert.NotContains(t, view, "total weight must equal 100%")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 30), "total weight must equal 100%")
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(&fakeEvents{}, "")
	assert.Contains(t, s.View(80, 24), "Loading")
	load(t, s)
	assert.Contains(t, s.View(80, 24), "No sync activity yet.")

	s = New(&fakeEvents{err: errors.New("disk I/O error")}, "")
	load(t, s)
	assert.Contains(t, s.View(80, 24), "disk I/O error")
}

func TestHistoryEscapePops(t *testing.T) {
	s := New(&fakeEvents{}, "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
