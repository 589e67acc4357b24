package domain

import "time"

// Admin is a staff account for the dashboard. There is no self-service
// registration; rows are seeded by the migration tool.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
