package repo

import (
	"context"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/sqlinline"
)

// MemberRepositoryPG implements domain.MemberRepository using PostgreSQL.
type MemberRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewMemberRepository creates a new kakasaku member repo.
func NewMemberRepository(sql infra.SQLExecutor) *MemberRepositoryPG {
	return &MemberRepositoryPG{sql: sql}
}

// Create inserts a member. The unique index on email makes the duplicate
// check and the insert a single atomic statement; a duplicate surfaces as
// domain.ErrDuplicateEmail and leaves no second row.
func (r *MemberRepositoryPG) Create(ctx context.Context, member *domain.Member) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertMember,
		member.Name,
		member.Email,
		member.Phone,
		member.MonthlyAmount,
		string(member.PaymentStatus),
		member.DueDate,
	)
	return translate(row.Scan(&member.ID, &member.CreatedAt))
}

// List returns all members, newest first.
func (r *MemberRepositoryPG) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListMembers)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var items []domain.Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, translate(err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// SetPaymentStatus writes the given status and returns the updated row so
// callers can patch their local list in place.
func (r *MemberRepositoryPG) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Member, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSetMemberPaymentStatus, id, string(status))
	m, err := scanMember(row.Scan)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func scanMember(scan func(dest ...any) error) (*domain.Member, error) {
	var m domain.Member
	var status string
	if err := scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.MonthlyAmount, &status, &m.DueDate, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.PaymentStatus = domain.PaymentStatus(status)
	return &m, nil
}

var _ domain.MemberRepository = (*MemberRepositoryPG)(nil)
