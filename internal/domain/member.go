package domain

import "time"

// PaymentStatus tracks a kakasaku member's monthly payment.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// Opposite returns the flipped status for the admin toggle.
func (s PaymentStatus) Opposite() PaymentStatus {
	if s == PaymentPaid {
		return PaymentUnpaid
	}
	return PaymentPaid
}

// Valid reports whether the status is one of the known values.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

// Member is a kakasaku monthly-giving member. Email is unique; a duplicate
// signup is rejected by the database and surfaced as ErrDuplicateEmail.
// PaymentStatus is the only field mutated after signup.
type Member struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	MonthlyAmount int64
	PaymentStatus PaymentStatus
	DueDate       time.Time
	CreatedAt     time.Time
}

// NextDueDate returns the first day of the month after now, the standing
// due date for new kakasaku members.
func NextDueDate(now time.Time) time.Time {
	year, month, _ := now.Date()
	return time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location())
}
