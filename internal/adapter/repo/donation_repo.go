package repo

import (
	"context"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a new donation record and fills in the generated id and
// timestamp. The statement never touches the programs table; program totals
// are maintained by the database trigger.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	programID := ""
	if donation.ProgramID != nil {
		programID = *donation.ProgramID
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		donation.Name,
		donation.Email,
		donation.Amount,
		string(donation.PaymentMethod),
		string(donation.Type),
		donation.Status,
		programID,
	)
	return translate(row.Scan(&donation.ID, &donation.CreatedAt))
}

// List returns all donations, newest first.
func (r *DonationRepositoryPG) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var method, dtype string
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Amount, &method, &dtype, &d.Status, &d.ProgramID, &d.CreatedAt); err != nil {
			return nil, translate(err)
		}
		d.PaymentMethod = domain.PaymentMethod(method)
		d.Type = domain.DonationType(dtype)
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// GeneralTotals sums the general-pool donations and counts their rows.
func (r *DonationRepositoryPG) GeneralTotals(ctx context.Context) (int64, int64, error) {
	var raised, donors int64
	row := r.sql.QueryRow(ctx, sqlinline.QGeneralDonationTotals)
	if err := row.Scan(&raised, &donors); err != nil {
		return 0, 0, translate(err)
	}
	return raised, donors, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
