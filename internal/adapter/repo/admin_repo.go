package repo

import (
	"context"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/sqlinline"
)

// AdminRepositoryPG implements domain.AdminRepository using PostgreSQL.
type AdminRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAdminRepository creates a new admin repo.
func NewAdminRepository(sql infra.SQLExecutor) *AdminRepositoryPG {
	return &AdminRepositoryPG{sql: sql}
}

// GetByEmail resolves a staff account. Missing rows come back as
// domain.ErrNotFound; the login handler folds that into the same message as
// a wrong password.
func (r *AdminRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAdminByEmail, email)
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

var _ domain.AdminRepository = (*AdminRepositoryPG)(nil)
