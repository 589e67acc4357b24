// Package stats keeps donation progress snapshots current. A Tracker owns
// one bus subscription for its scope; every change notification triggers
// either a full re-read (general pool) or an inline patch from the event
// payload (single program). Both paths converge to the same snapshot when a
// full re-read is forced.
package stats

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/realtime"
)

// Snapshot is the derived progress state for one scope.
type Snapshot struct {
	Raised int64 `json:"raised"`
	Target int64 `json:"target"`
	Donors int64 `json:"donors"`
}

// Progress returns the clamped percentage of target reached.
func (s Snapshot) Progress() float64 {
	return domain.ProgressPercent(s.Raised, s.Target)
}

// Scope selects what a tracker aggregates and how it reacts to change
// events.
type Scope interface {
	// Collection names the bus collection to subscribe to.
	Collection() string
	// RecordID narrows the subscription to one record, or "" for all.
	RecordID() string
	// Load performs a full read and derives the snapshot.
	Load(ctx context.Context) (Snapshot, error)
	// Apply patches the current snapshot from an event payload. ok=false
	// means the payload is unusable and the caller must re-read.
	Apply(change realtime.Change, current Snapshot) (Snapshot, bool)
}

// GeneralScope aggregates the general donation pool: sum and count of all
// general rows against a fixed configured target. It never patches inline;
// correctness over efficiency, the volumes are small.
type GeneralScope struct {
	Donations domain.DonationRepository
	Target    int64
}

func (s GeneralScope) Collection() string { return realtime.CollectionDonations }
func (s GeneralScope) RecordID() string   { return "" }

func (s GeneralScope) Load(ctx context.Context) (Snapshot, error) {
	raised, donors, err := s.Donations.GeneralTotals(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Raised: raised, Target: s.Target, Donors: donors}, nil
}

func (s GeneralScope) Apply(realtime.Change, Snapshot) (Snapshot, bool) {
	return Snapshot{}, false
}

// ProgramScope tracks a single program row; raised/target/donors come from
// the row itself. Update events carrying the new row inline are applied
// without a re-read.
type ProgramScope struct {
	Programs  domain.ProgramRepository
	ProgramID string
}

func (s ProgramScope) Collection() string { return realtime.CollectionPrograms }
func (s ProgramScope) RecordID() string   { return s.ProgramID }

func (s ProgramScope) Load(ctx context.Context) (Snapshot, error) {
	program, err := s.Programs.GetByID(ctx, s.ProgramID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Raised: program.Raised, Target: program.Target, Donors: program.Donors}, nil
}

// programPatch uses pointer fields to tell "absent" apart from zero.
type programPatch struct {
	Raised *int64 `json:"raised"`
	Target *int64 `json:"target"`
	Donors *int64 `json:"donors"`
}

func (s ProgramScope) Apply(change realtime.Change, current Snapshot) (Snapshot, bool) {
	if change.Op != realtime.OpUpdate || len(change.NewRow) == 0 {
		return Snapshot{}, false
	}
	var patch programPatch
	if err := json.Unmarshal(change.NewRow, &patch); err != nil {
		return Snapshot{}, false
	}
	if patch.Raised == nil && patch.Target == nil && patch.Donors == nil {
		return Snapshot{}, false
	}
	next := current
	if patch.Raised != nil {
		next.Raised = *patch.Raised
	}
	if patch.Target != nil {
		next.Target = *patch.Target
	}
	if patch.Donors != nil {
		next.Donors = *patch.Donors
	}
	return next, true
}

// Tracker keeps one scope's snapshot current. At most one subscription is
// live per tracker; Rescope and Close always tear it down, including on
// error paths. A read that completes after Close or Rescope does not touch
// the snapshot.
type Tracker struct {
	bus    *realtime.Bus
	run    context.Context
	logger zerolog.Logger

	mu       sync.Mutex
	scope    Scope
	snapshot Snapshot
	gen      int
	stop     func()
	closed   bool
}

// NewTracker builds a tracker; call Start to load and subscribe. run bounds
// the subscription and every event-driven re-read, so it must outlive the
// caller of Start (trackers serve many requests after the first one).
func NewTracker(run context.Context, bus *realtime.Bus, scope Scope, logger zerolog.Logger) *Tracker {
	if run == nil {
		run = context.Background()
	}
	return &Tracker{bus: bus, run: run, scope: scope, logger: logger}
}

// Start performs the initial read and opens the subscription. ctx covers
// only that first read; the subscription lives on the run context. On any
// error the tracker holds no subscription.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	scope, gen := t.scope, t.gen
	t.mu.Unlock()

	snap, err := scope.Load(ctx)
	if err != nil {
		return err
	}

	sub, err := t.bus.Subscribe(t.run, scope.Collection(), scope.RecordID())
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.closed || t.gen != gen {
		t.mu.Unlock()
		sub.Close()
		return nil
	}
	t.snapshot = snap
	t.stop = func() { sub.Close() }
	t.mu.Unlock()

	go t.loop(t.run, sub, scope, gen)
	return nil
}

func (t *Tracker) loop(ctx context.Context, sub *realtime.Subscription, scope Scope, gen int) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-sub.Events():
			if !ok {
				return
			}
			t.handle(ctx, change, scope, gen)
		case err, ok := <-sub.Errors():
			if !ok {
				return
			}
			t.logger.Warn().Err(err).Msg("stats subscription decode error")
		}
	}
}

func (t *Tracker) handle(ctx context.Context, change realtime.Change, scope Scope, gen int) {
	t.mu.Lock()
	if t.closed || t.gen != gen {
		t.mu.Unlock()
		return
	}
	if next, ok := scope.Apply(change, t.snapshot); ok {
		t.snapshot = next
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	// Payload unusable: fall back to a full re-read. Failures keep the
	// previous snapshot on display instead of clearing it.
	snap, err := scope.Load(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("stats refresh failed, keeping previous snapshot")
		return
	}
	t.commit(snap, gen)
}

func (t *Tracker) commit(snap Snapshot, gen int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.gen != gen {
		return
	}
	t.snapshot = snap
}

// Snapshot returns the current derived state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// Refresh forces a full re-read, the convergence point both event paths
// must agree with.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.Lock()
	scope, gen := t.scope, t.gen
	t.mu.Unlock()

	snap, err := scope.Load(ctx)
	if err != nil {
		return err
	}
	t.commit(snap, gen)
	return nil
}

// Rescope tears down the current subscription, switches to the new scope
// and starts again. The old subscription is gone before the new one exists,
// so no duplicate handlers survive the switch.
func (t *Tracker) Rescope(ctx context.Context, scope Scope) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.gen++
	stop := t.stop
	t.stop = nil
	t.scope = scope
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	return t.Start(ctx)
}

// Close releases the subscription. Idempotent.
func (t *Tracker) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.gen++
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}
