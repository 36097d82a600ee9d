// Package gradesync moves a subject's grading structure between the grading
// service and the editor's in-memory draft.
package gradesync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/logger"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/weights"
)

// State is the adapter's position in its load/save lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateLoadError State = "load_error"
	StateSaving    State = "saving"
	StateSaveError State = "save_error"
)

// Actions recorded in the sync audit log.
const (
	ActionLoad       = "load"
	ActionSave       = "save"
	ActionDistribute = "distribute"
	ActionPassing    = "passing"
)

// Backend is the grading service. *api.Client satisfies it.
type Backend interface {
	HasCredential() bool
	Scores(ctx context.Context, subjectID string) (*api.ScoresResponse, error)
	SaveHierarchical(ctx context.Context, subjectID string, t weights.Tree) error
	AutoDistribute(ctx context.Context, subjectID string) error
	UpdatePassingCriteria(ctx context.Context, subjectID string, pct float64) error
}

// Snapshot is a point-in-time copy of the adapter state.
type Snapshot struct {
	State       State
	Draft       weights.Draft
	Loaded      bool
	Passing     float64
	SubjectName string
	Err         error
	NeedsSignIn bool
}

// Adapter owns the draft of one subject and serializes its persistence.
// Methods may be called from any goroutine; the lock is never held across
// network I/O.
type Adapter struct {
	backend   Backend
	subjectID string
	notifier  Notifier
	events    store.EventRepo
	log       *logger.Logger

	mu          sync.Mutex
	state       State
	draft       weights.Draft
	loaded      bool
	passing     float64
	subjectName string
	lastErr     error
	gen         uint64
	closed      bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithNotifier routes success and failure notices to n.
func WithNotifier(n Notifier) Option {
	return func(a *Adapter) {
		if n != nil {
			a.notifier = n
		}
	}
}

// WithEventRepo records every backend call in the local audit log.
func WithEventRepo(r store.EventRepo) Option {
	return func(a *Adapter) { a.events = r }
}

// WithLogger sets the adapter's logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an idle adapter for subjectID.
func New(backend Backend, subjectID string, opts ...Option) *Adapter {
	a := &Adapter{
		backend:   backend,
		subjectID: subjectID,
		notifier:  discardNotifier{},
		log:       logger.Nop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("subject", subjectID)
	return a
}

// SubjectID returns the subject this adapter edits.
func (a *Adapter) SubjectID() string {
	return a.subjectID
}

// Snapshot returns the current state.
func (a *Adapter) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		State:       a.state,
		Draft:       a.draft,
		Loaded:      a.loaded,
		Passing:     a.passing,
		SubjectName: a.subjectName,
		Err:         a.lastErr,
		NeedsSignIn: NeedsSignIn(a.lastErr),
	}
}

// Load fetches the subject's tree and passing threshold, replacing the
// draft. A newer Load supersedes an older one still in flight.
func (a *Adapter) Load(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.state == StateSaving {
		a.mu.Unlock()
		return ErrBusy
	}
	if !a.backend.HasCredential() {
		a.state = StateLoadError
		a.lastErr = api.ErrNoCredential
		a.mu.Unlock()
		a.notifyErr(api.ErrNoCredential)
		return api.ErrNoCredential
	}
	a.gen++
	gen := a.gen
	a.state = StateLoading
	a.mu.Unlock()

	start := time.Now()
	resp, err := a.backend.Scores(ctx, a.subjectID)
	a.record(ctx, ActionLoad, start, err)

	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		a.log.Debug("dropping stale load response", "generation", gen)
		return ErrStale
	}
	if err != nil {
		a.state = StateLoadError
		a.lastErr = err
		a.mu.Unlock()
		a.notifyErr(err)
		return fmt.Errorf("load scores: %w", err)
	}

	a.draft = weights.NewDraft(resp.ScoreStructure)
	a.loaded = true
	a.passing = resp.Subject.PassingPercentage
	a.subjectName = resp.Subject.Name
	a.state = StateLoaded
	a.lastErr = nil
	a.mu.Unlock()

	a.log.Info("scores loaded", "units", len(resp.ScoreStructure.Units))
	return nil
}

// Edit applies a committed field value to the draft.
func (a *Adapter) Edit(ref weights.NodeRef, value float64) (weights.Draft, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.loaded {
		return a.draft, ErrNotLoaded
	}
	if a.state == StateSaving {
		return a.draft, ErrBusy
	}
	next, err := a.draft.Apply(ref, value)
	if err != nil {
		return a.draft, err
	}
	a.draft = next
	return next, nil
}

// Save persists the draft. A draft that fails the validation gate is
// refused with *weights.GateError before any request is made. On success
// the draft is discarded and reloaded from the service.
func (a *Adapter) Save(ctx context.Context) error {
	a.mu.Lock()
	prev, err := a.beginWrite()
	if err != nil {
		a.mu.Unlock()
		if !errors.Is(err, ErrClosed) {
			a.notifyErr(err)
		}
		return err
	}
	if gateErr := a.draft.CanSave().Err(); gateErr != nil {
		a.state = prev
		a.mu.Unlock()
		a.notifyErr(gateErr)
		return gateErr
	}
	tree := a.draft.Tree.Clone()
	gen := a.gen
	a.mu.Unlock()

	start := time.Now()
	err = a.backend.SaveHierarchical(ctx, a.subjectID, tree)
	a.record(ctx, ActionSave, start, err)

	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		a.state = StateSaveError
		a.lastErr = err
		a.mu.Unlock()
		a.notifyErr(err)
		return fmt.Errorf("save weights: %w", err)
	}
	a.state = StateLoaded
	a.lastErr = nil
	a.mu.Unlock()

	a.notifyInfo("Grading weights saved.")
	if err := a.Load(ctx); err != nil {
		return fmt.Errorf("reload after save: %w", err)
	}
	return nil
}

// AutoDistribute asks the service to spread the weights evenly and then
// reloads. Unless confirmed it returns ErrDeclined without any request or
// state change.
func (a *Adapter) AutoDistribute(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrDeclined
	}

	a.mu.Lock()
	prev, err := a.beginWrite()
	if err != nil {
		a.mu.Unlock()
		if !errors.Is(err, ErrClosed) {
			a.notifyErr(err)
		}
		return err
	}
	gen := a.gen
	a.mu.Unlock()

	start := time.Now()
	err = a.backend.AutoDistribute(ctx, a.subjectID)
	a.record(ctx, ActionDistribute, start, err)

	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		a.state = prev
		a.lastErr = err
		a.mu.Unlock()
		a.notifyErr(err)
		return fmt.Errorf("auto-distribute: %w", err)
	}
	a.state = StateLoaded
	a.mu.Unlock()

	a.notifyInfo("Weights distributed evenly.")
	if err := a.Load(ctx); err != nil {
		return fmt.Errorf("reload after distribute: %w", err)
	}
	return nil
}

// UpdatePassingThreshold sets the subject's passing percentage. It does not
// touch the draft or the lifecycle state.
func (a *Adapter) UpdatePassingThreshold(ctx context.Context, value float64) error {
	if math.IsNaN(value) || value < 0 || value > weights.Total {
		err := &RangeError{Value: value}
		a.notifyErr(err)
		return err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if !a.backend.HasCredential() {
		a.lastErr = api.ErrNoCredential
		a.mu.Unlock()
		a.notifyErr(api.ErrNoCredential)
		return api.ErrNoCredential
	}
	gen := a.gen
	a.mu.Unlock()

	start := time.Now()
	err := a.backend.UpdatePassingCriteria(ctx, a.subjectID, value)
	a.record(ctx, ActionPassing, start, err)

	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		a.lastErr = err
		a.mu.Unlock()
		a.notifyErr(err)
		return fmt.Errorf("update passing threshold: %w", err)
	}
	a.passing = value
	a.mu.Unlock()

	a.notifyInfo(fmt.Sprintf("Passing threshold set to %s%%.", weights.FormatPercent(value)))
	return nil
}

// Close detaches the adapter. Responses arriving afterwards are discarded.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.gen++
}

// beginWrite moves a loaded adapter into StateSaving and returns the state
// to restore on a local refusal. Must be called with a.mu held.
func (a *Adapter) beginWrite() (State, error) {
	if a.closed {
		return a.state, ErrClosed
	}
	switch a.state {
	case StateSaving:
		return a.state, ErrBusy
	case StateLoaded, StateSaveError:
	case StateLoadError:
		// A failed reload keeps the last good draft, which stays writable.
		if !a.loaded {
			return a.state, ErrNotLoaded
		}
	default:
		return a.state, ErrNotLoaded
	}
	if !a.backend.HasCredential() {
		a.lastErr = api.ErrNoCredential
		return a.state, api.ErrNoCredential
	}
	prev := a.state
	a.state = StateSaving
	return prev, nil
}

func (a *Adapter) notifyInfo(text string) {
	a.notifier.Notify(Notice{Level: NoticeInfo, Text: text, Time: time.Now()})
}

func (a *Adapter) notifyErr(err error) {
	a.log.Warn("sync action failed", "error", err)
	a.notifier.Notify(Notice{Level: NoticeError, Text: Describe(err), Time: time.Now()})
}

// record appends one backend call to the audit log, when configured.
func (a *Adapter) record(ctx context.Context, action string, start time.Time, err error) {
	latency := time.Since(start)
	requestID := uuid.NewString()
	a.log.Debug("backend call", "action", action, "request_id", requestID,
		"latency_ms", latency.Milliseconds(), "ok", err == nil)

	if a.events == nil {
		return
	}

	data := store.SyncEventData{
		RequestID:  requestID,
		SubjectID:  a.subjectID,
		Action:     action,
		Success:    err == nil,
		StatusCode: statusCode(err),
		LatencyMs:  latency.Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if err := a.events.AppendSyncEvent(context.WithoutCancel(ctx), data); err != nil {
		a.log.Warn("record sync event", "error", err)
	}
}

func statusCode(err error) int {
	var se *api.StatusError
	var ve *api.ValidationError
	switch {
	case errors.As(err, &se):
		return se.Code
	case errors.As(err, &ve):
		return http.StatusBadRequest
	}
	return 0
}
