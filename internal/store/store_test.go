package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/abhisek/gradewise/internal/weights"
)

var testDBCounter int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	testDBCounter++
	// Each test gets its own shared-cache memory database.
	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", t.Name(), testDBCounter)
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "gradewise.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSyncEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SyncEventData{
		{RequestID: "r1", SubjectID: "s1", Action: "load", Success: true, LatencyMs: 12},
		{RequestID: "r2", SubjectID: "s1", Action: "save", Success: false, StatusCode: 400, ErrorMessage: "total must equal 100%"},
		{RequestID: "r3", SubjectID: "s2", Action: "load", Success: true},
	}
	for _, e := range events {
		if err := repo.AppendSyncEvent(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.RequestID, err)
		}
	}

	all, err := repo.QuerySyncEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].RequestID != "r3" {
		t.Errorf("newest first: got %q, want r3", all[0].RequestID)
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", all[0].Sequence, all[1].Sequence)
	}

	s1, err := repo.QuerySyncEvents(ctx, QueryOpts{SubjectID: "s1", Limit: 1})
	if err != nil {
		t.Fatalf("query s1: %v", err)
	}
	if len(s1) != 1 || s1[0].RequestID != "r2" {
		t.Fatalf("s1 query = %+v, want only r2", s1)
	}
	if s1[0].StatusCode != 400 || s1[0].ErrorMessage == "" || s1[0].Success {
		t.Errorf("failed event not round-tripped: %+v", s1[0])
	}
}

func TestSubjectSaveGetList(t *testing.T) {
	s := openTestStore(t)
	repo := s.SubjectRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("get missing: err = %v, want ErrSubjectNotFound", err)
	}

	subj := &Subject{
		ID:                "algebra",
		Name:              "Algebra",
		PassingPercentage: 60,
		Tree: weights.Tree{
			PreTest: &weights.PreTest{ID: "pre", Title: "Warmup"},
			Units: []weights.Unit{{
				ID: "u1", Title: "Unit 1", Weight: 70,
				Quiz:    &weights.Quiz{ID: "q1", Weight: 30},
				Lessons: []weights.Lesson{{ID: "l1", Weight: 40, IsFixed: true}},
			}},
			PostTest: &weights.PostTest{ID: "post", Weight: 30},
		},
	}
	if err := repo.Save(ctx, subj); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "algebra")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Algebra" || got.PassingPercentage != 60 {
		t.Errorf("metadata = %+v", got)
	}
	if !weights.Recompute(got.Tree).Valid {
		t.Errorf("stored tree no longer totals 100: %+v", got.Tree)
	}
	if got.Tree.Units[0].Quiz == nil || got.Tree.Units[0].Quiz.Weight != 30 {
		t.Errorf("unit quiz lost: %+v", got.Tree.Units[0])
	}
	if !got.Tree.Units[0].Lessons[0].IsFixed {
		t.Error("fixed flag lost")
	}
	if got.Tree.PreTest == nil || got.Tree.PreTest.Title != "Warmup" {
		t.Error("pre-test lost")
	}

	subj.PassingPercentage = 75
	if err := repo.Save(ctx, subj); err != nil {
		t.Fatalf("resave: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1 (save must upsert)", len(list))
	}
	if list[0].PassingPercentage != 75 {
		t.Errorf("passing = %v, want 75", list[0].PassingPercentage)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"sync_events", "subjects", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}
