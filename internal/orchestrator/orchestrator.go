package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/metrics"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
	"github.com/preston-bernstein/schedule-builder/internal/store"
)

// Operation labels used for stale-response metrics and logs.
const (
	opSelectSport       = "select_sport"
	opLoadSchedule      = "load_schedule"
	opCreateSchedule    = "create_schedule"
	opGenerate          = "generate_schedule"
	opOptimize          = "optimize_schedule"
	opSave              = "save_schedule"
	opExport            = "export_schedule"
	opRefreshViolations = "refresh_violations"
	opToggleConstraint  = "toggle_constraint"
	opAutoFix           = "auto_fix"
)

// Remote is the subset of the scheduling service the orchestrator drives.
type Remote interface {
	remote.TeamSource
	remote.ScheduleStore
	reconcile.Source
}

// Saver performs the local file-save side effect of an export.
type Saver interface {
	Save(ctx context.Context, exp remote.Export) (string, error)
}

// Options configures an Orchestrator.
type Options struct {
	Season  string
	Saver   Saver
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Orchestrator owns the canonical schedule, team, constraint and violation state and
// sequences every remote call that mutates it. Remote calls never run under the lock;
// each response is committed only if the selection it was issued under is still current.
type Orchestrator struct {
	remote     Remote
	reconciler *reconcile.Reconciler
	store      *store.MemoryStore
	saver      Saver
	metrics    *metrics.Recorder
	logger     *slog.Logger

	mu           sync.Mutex
	phase        Phase
	opSeq        uint64
	owner        uint64
	scheduleReq  uint64
	violationReq uint64

	// pending holds a phase-neutral failure raised while another operation owned
	// the phase; it surfaces when that owner releases the phase.
	pending      string
	pendingEpoch uint64
}

// New constructs an Orchestrator in the idle phase with no sport selected.
func New(r Remote, opts Options) *Orchestrator {
	o := &Orchestrator{
		remote:     r,
		reconciler: reconcile.New(r),
		store:      store.NewMemoryStore(),
		saver:      opts.Saver,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		phase:      Idle(),
	}
	o.store.Update(func(st *store.State) bool {
		st.Season = opts.Season
		return true
	})
	return o
}

// ticket captures the selection a request was issued under.
type ticket struct {
	op         string
	token      uint64
	epoch      uint64
	scheduleID string
	schedReq   uint64
	violReq    uint64
}

// start captures the current selection and, when kind is set, takes ownership of the phase.
func (o *Orchestrator) start(op string, kind PhaseKind) (ticket, store.State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.startLocked(op, kind)
}

func (o *Orchestrator) startLocked(op string, kind PhaseKind) (ticket, store.State) {
	st := o.store.Get()
	t := ticket{op: op, epoch: st.Epoch, scheduleID: st.ScheduleID()}
	if kind != "" {
		o.opSeq++
		o.owner = o.opSeq
		t.token = o.opSeq
		o.setPhaseLocked(Phase{Kind: kind})
	}
	return t, st
}

// startSchedule is start for operations that replace the current schedule; the latest one issued wins.
// check runs against the current state before anything changes.
func (o *Orchestrator) startSchedule(op string, kind PhaseKind, check func(store.State) error) (ticket, store.State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if check != nil {
		if err := check(o.store.Get()); err != nil {
			return ticket{}, store.State{}, err
		}
	}
	t, st := o.startLocked(op, kind)
	o.scheduleReq++
	t.schedReq = o.scheduleReq
	return t, st, nil
}

// startViolations is start for requests whose result is a violation list for the current schedule.
func (o *Orchestrator) startViolations(op string, token uint64) (ticket, store.State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, st := o.startLocked(op, "")
	o.violationReq++
	t.violReq = o.violationReq
	t.token = token
	return t, st
}

func (o *Orchestrator) currentLocked(t ticket, st *store.State) bool {
	if st.Epoch != t.epoch {
		return false
	}
	if t.schedReq != 0 && t.schedReq != o.scheduleReq {
		return false
	}
	if t.violReq != 0 && (t.violReq != o.violationReq || st.ScheduleID() != t.scheduleID) {
		return false
	}
	return true
}

// commit applies fn when t is still current. A stale ticket is discarded and reported.
func (o *Orchestrator) commit(t ticket, fn func(*store.State)) (store.State, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	next, ok := o.store.Update(func(st *store.State) bool {
		if !o.currentLocked(t, st) {
			return false
		}
		fn(st)
		return true
	})
	if !ok {
		o.discardLocked(t)
	}
	return next, ok
}

// finish returns the phase to idle if t still owns it.
func (o *Orchestrator) finish(t ticket) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if t.token != 0 && o.owner == t.token {
		o.releaseLocked()
	}
}

// releaseLocked drops phase ownership and settles on idle, or on a deferred failure
// recorded for the still-current selection.
func (o *Orchestrator) releaseLocked() {
	o.owner = 0
	msg := o.pending
	stale := o.pendingEpoch != o.store.Get().Epoch
	o.pending = ""
	if msg == "" || stale {
		o.setPhaseLocked(Idle())
		return
	}
	o.setPhaseLocked(Failed(PhaseIdle, msg))
}

// fail records a failure in the phase and returns the error to hand back to the caller.
// Failures of stale requests are discarded and reported as ErrSuperseded.
func (o *Orchestrator) fail(ctx context.Context, t ticket, message string, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := o.store.Get()
	if !o.currentLocked(t, &st) {
		o.discardLocked(t)
		return ErrSuperseded
	}
	switch {
	case t.token != 0 && o.owner == t.token:
		o.owner = 0
		o.pending = ""
		o.setPhaseLocked(Failed(o.phase.Kind, message))
	case t.token == 0 && o.owner == 0:
		o.setPhaseLocked(Failed(PhaseIdle, message))
	case t.token == 0:
		o.pending, o.pendingEpoch = message, st.Epoch
	}
	logging.Warn(logging.FromContext(ctx, o.logger), "schedule operation failed",
		slog.String(logging.FieldOperation, t.op),
		slog.String(logging.FieldSport, st.Sport),
		"error", err,
	)
	return &OperationError{Message: message, Err: err}
}

func (o *Orchestrator) discardLocked(t ticket) {
	o.metrics.RecordStaleResponse(t.op)
	logging.Debug(o.logger, "discarded stale response", slog.String(logging.FieldOperation, t.op))
	if t.token != 0 && o.owner == t.token {
		o.releaseLocked()
	}
}

func (o *Orchestrator) setPhaseLocked(p Phase) {
	if o.phase == p {
		return
	}
	o.phase = p
	o.metrics.RecordTransition(string(p.Kind))
	logging.Debug(o.logger, "phase changed",
		slog.String("phase", string(p.Kind)),
		slog.String("prev", string(p.Prev)),
	)
}

// Phase returns the current activity state.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// DismissError clears a failure. It reports whether there was one to clear.
func (o *Orchestrator) DismissError() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase.Kind != PhaseFailed {
		return false
	}
	o.setPhaseLocked(Idle())
	return true
}
