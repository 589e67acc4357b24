package repo

import (
	"context"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/sqlinline"
)

// ProgramRepositoryPG implements domain.ProgramRepository using PostgreSQL.
type ProgramRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProgramRepository creates a new program repo.
func NewProgramRepository(sql infra.SQLExecutor) *ProgramRepositoryPG {
	return &ProgramRepositoryPG{sql: sql}
}

// Create inserts a program. Raised and donor counters always start at zero.
func (r *ProgramRepositoryPG) Create(ctx context.Context, program *domain.Program) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertProgram,
		program.Title,
		program.Description,
		string(program.Category),
		program.Target,
	)
	if err := row.Scan(&program.ID, &program.CreatedAt); err != nil {
		return translate(err)
	}
	program.Raised = 0
	program.Donors = 0
	return nil
}

// Update rewrites the editable fields of an existing program by id.
func (r *ProgramRepositoryPG) Update(ctx context.Context, program *domain.Program) error {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateProgram,
		program.ID,
		program.Title,
		program.Description,
		string(program.Category),
		program.Target,
	)
	var id string
	return translate(row.Scan(&id))
}

// Delete removes a program by id.
func (r *ProgramRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteProgram, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches one program row.
func (r *ProgramRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProgramByID, id)
	p, err := scanProgram(row.Scan)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// List returns all programs, newest first.
func (r *ProgramRepositoryPG) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPrograms)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var items []domain.Program
	for rows.Next() {
		p, err := scanProgram(rows.Scan)
		if err != nil {
			return nil, translate(err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func scanProgram(scan func(dest ...any) error) (*domain.Program, error) {
	var p domain.Program
	var category string
	if err := scan(&p.ID, &p.Title, &p.Description, &category, &p.Target, &p.Raised, &p.Donors, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Category = domain.ProgramCategory(category)
	return &p, nil
}

var _ domain.ProgramRepository = (*ProgramRepositoryPG)(nil)
