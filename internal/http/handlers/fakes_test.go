package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/realtime"
	"kakasaku_backend/internal/stats"
)

type fakeDonationRepo struct {
	created   []domain.Donation
	items     []domain.Donation
	createErr error
}

func (f *fakeDonationRepo) Create(_ context.Context, d *domain.Donation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if d.ID == "" {
		d.ID = "don-1"
	}
	d.CreatedAt = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f.created = append(f.created, *d)
	return nil
}

func (f *fakeDonationRepo) List(context.Context) ([]domain.Donation, error) {
	return f.items, nil
}

func (f *fakeDonationRepo) GeneralTotals(context.Context) (int64, int64, error) {
	var raised, donors int64
	for _, d := range f.items {
		if d.Type == domain.DonationGeneral {
			raised += d.Amount
			donors++
		}
	}
	return raised, donors, nil
}

type fakeProgramRepo struct {
	byID      map[string]domain.Program
	created   []domain.Program
	updated   []domain.Program
	deleted   []string
	deleteErr error
}

func newFakeProgramRepo(programs ...domain.Program) *fakeProgramRepo {
	f := &fakeProgramRepo{byID: make(map[string]domain.Program)}
	for _, p := range programs {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProgramRepo) Create(_ context.Context, p *domain.Program) error {
	if p.ID == "" {
		p.ID = "prog-new"
	}
	f.byID[p.ID] = *p
	f.created = append(f.created, *p)
	return nil
}

func (f *fakeProgramRepo) Update(_ context.Context, p *domain.Program) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = *p
	f.updated = append(f.updated, *p)
	return nil
}

func (f *fakeProgramRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProgramRepo) GetByID(_ context.Context, id string) (*domain.Program, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProgramRepo) List(context.Context) ([]domain.Program, error) {
	out := make([]domain.Program, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

type fakeMemberRepo struct {
	byID      map[string]domain.Member
	created   []domain.Member
	createErr error
}

func newFakeMemberRepo(members ...domain.Member) *fakeMemberRepo {
	f := &fakeMemberRepo{byID: make(map[string]domain.Member)}
	for _, m := range members {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	if f.createErr != nil {
		return f.createErr
	}
	if m.ID == "" {
		m.ID = "mem-1"
	}
	f.byID[m.ID] = *m
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMemberRepo) List(context.Context) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMemberRepo) SetPaymentStatus(_ context.Context, id string, status domain.PaymentStatus) (*domain.Member, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.PaymentStatus = status
	f.byID[id] = m
	return &m, nil
}

type fakeAdminRepo struct {
	byEmail map[string]domain.Admin
	err     error
}

// GetByEmail matches case-insensitively, like the lower(email) index.
func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

type fakePublisher struct {
	changes []realtime.Change
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, change realtime.Change) error {
	if f.err != nil {
		return f.err
	}
	f.changes = append(f.changes, change)
	return nil
}

type fakeProgress struct {
	general   stats.Snapshot
	programs  map[string]stats.Snapshot
	forgotten []string
}

func (f *fakeProgress) General(context.Context) (stats.Snapshot, error) {
	return f.general, nil
}

func (f *fakeProgress) Program(_ context.Context, id string) (stats.Snapshot, error) {
	snap, ok := f.programs[id]
	if !ok {
		return stats.Snapshot{}, domain.ErrNotFound
	}
	return snap, nil
}

func (f *fakeProgress) Forget(id string) { f.forgotten = append(f.forgotten, id) }

// allowAll satisfies the revocation check with "never revoked".
type allowAll struct{}

func (allowAll) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = make(map[string]time.Duration)
	}
	f.revoked[jti] = ttl
	return nil
}

func newTestApp() (*App, *fakeDonationRepo, *fakeProgramRepo, *fakeMemberRepo, *fakePublisher) {
	donations := &fakeDonationRepo{}
	programs := newFakeProgramRepo()
	members := newFakeMemberRepo()
	bus := &fakePublisher{}
	app := NewApp(nil, App{
		Donations: donations,
		Programs:  programs,
		Members:   members,
		Admins:    &fakeAdminRepo{byEmail: map[string]domain.Admin{}},
		Bus:       bus,
		Stats:     &fakeProgress{programs: map[string]stats.Snapshot{}},
		Logger:    zerolog.Nop(),
		JWTSecret: "test-secret",
	})
	return app, donations, programs, members, bus
}
