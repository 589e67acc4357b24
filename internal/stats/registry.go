package stats

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/realtime"
)

// Registry hands out live trackers per scope so the HTTP layer serves
// push-updated snapshots instead of recomputing per request. One tracker is
// kept per program id plus one for the general pool; all are torn down on
// Close.
type Registry struct {
	run       context.Context
	bus       *realtime.Bus
	donations domain.DonationRepository
	programs  domain.ProgramRepository
	target    int64
	logger    zerolog.Logger

	mu      sync.Mutex
	general *Tracker
	byID    map[string]*Tracker
	closed  bool
}

// NewRegistry builds a registry; trackers start lazily on first use. run is
// the process-lifetime context: subscriptions opened for a tracker must not
// die with the request that happened to start it.
func NewRegistry(run context.Context, bus *realtime.Bus, donations domain.DonationRepository, programs domain.ProgramRepository, target int64, logger zerolog.Logger) *Registry {
	if run == nil {
		run = context.Background()
	}
	return &Registry{
		run:       run,
		bus:       bus,
		donations: donations,
		programs:  programs,
		target:    target,
		logger:    logger,
		byID:      make(map[string]*Tracker),
	}
}

// General returns the general-pool snapshot, starting its tracker on first
// call.
func (r *Registry) General(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Snapshot{}, domain.ErrUnavailable
	}
	tracker := r.general
	r.mu.Unlock()

	if tracker == nil {
		t := NewTracker(r.run, r.bus, GeneralScope{Donations: r.donations, Target: r.target}, r.logger)
		if err := t.Start(ctx); err != nil {
			return Snapshot{}, err
		}
		r.mu.Lock()
		if r.general == nil && !r.closed {
			r.general = t
		} else {
			// Pendaftaran kalah balapan, matikan yang baru.
			defer t.Close()
		}
		tracker = r.general
		r.mu.Unlock()
		if tracker == nil {
			t.Close()
			return Snapshot{}, domain.ErrUnavailable
		}
	}
	return tracker.Snapshot(), nil
}

// Program returns the snapshot for one program, starting its tracker on
// first call. Unknown ids surface domain.ErrNotFound from the initial read.
func (r *Registry) Program(ctx context.Context, programID string) (Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Snapshot{}, domain.ErrUnavailable
	}
	tracker := r.byID[programID]
	r.mu.Unlock()

	if tracker == nil {
		t := NewTracker(r.run, r.bus, ProgramScope{Programs: r.programs, ProgramID: programID}, r.logger)
		if err := t.Start(ctx); err != nil {
			return Snapshot{}, err
		}
		r.mu.Lock()
		if existing, ok := r.byID[programID]; ok || r.closed {
			tracker = existing
			defer t.Close()
		} else {
			r.byID[programID] = t
			tracker = t
		}
		r.mu.Unlock()
		if tracker == nil {
			return Snapshot{}, domain.ErrUnavailable
		}
	}
	return tracker.Snapshot(), nil
}

// Forget drops a program tracker, used after the program is deleted.
func (r *Registry) Forget(programID string) {
	r.mu.Lock()
	tracker := r.byID[programID]
	delete(r.byID, programID)
	r.mu.Unlock()
	if tracker != nil {
		tracker.Close()
	}
}

// Close tears down every tracker.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.closed = true
	general := r.general
	r.general = nil
	trackers := make([]*Tracker, 0, len(r.byID))
	for id, t := range r.byID {
		trackers = append(trackers, t)
		delete(r.byID, id)
	}
	r.mu.Unlock()

	if general != nil {
		general.Close()
	}
	for _, t := range trackers {
		t.Close()
	}
	return nil
}
