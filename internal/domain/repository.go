package domain

import "context"

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	List(ctx context.Context) ([]Donation, error)
	GeneralTotals(ctx context.Context) (raised int64, donors int64, err error)
}

// ProgramRepository handles fundraising program persistence.
type ProgramRepository interface {
	Create(ctx context.Context, program *Program) error
	Update(ctx context.Context, program *Program) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Program, error)
	List(ctx context.Context) ([]Program, error)
}

// MemberRepository handles kakasaku member persistence.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	List(ctx context.Context) ([]Member, error)
	SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Member, error)
}

// AdminRepository resolves staff accounts for login. Email lookup is
// case-insensitive, matching the unique index on lower(email).
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}
