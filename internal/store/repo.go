package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/gradewise/internal/weights"
)

// ErrSubjectNotFound is returned by SubjectRepo.Get for unknown ids.
var ErrSubjectNotFound = errors.New("subject not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SubjectID string    // exact match when set
}

// SyncEventData captures one call to the grading service.
type SyncEventData struct {
	RequestID    string
	SubjectID    string
	Action       string
	Success      bool
	StatusCode   int
	LatencyMs    int64
	ErrorMessage string
}

// SyncEventRecord is a stored SyncEventData with its ordering metadata.
type SyncEventRecord struct {
	SyncEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to the sync audit log.
type EventRepo interface {
	AppendSyncEvent(ctx context.Context, data SyncEventData) error

	// QuerySyncEvents returns events newest first.
	QuerySyncEvents(ctx context.Context, opts QueryOpts) ([]SyncEventRecord, error)
}

// Subject is a course with its grading structure.
type Subject struct {
	ID                string
	Name              string
	PassingPercentage float64
	Tree              weights.Tree
	UpdatedAt         time.Time
}

// SubjectRepo persists subjects for the reference server.
type SubjectRepo interface {
	// Get returns ErrSubjectNotFound when id is unknown.
	Get(ctx context.Context, id string) (*Subject, error)

	// Save inserts or replaces the subject with the same id.
	Save(ctx context.Context, s *Subject) error

	List(ctx context.Context) ([]Subject, error)
}
