package domain

import "time"

// MinDonationAmount is the smallest amount (in rupiah) accepted for a
// one-time donation. Enforced at submission time, not by storage.
const MinDonationAmount = 10_000

// PaymentMethod enumerates supported payment channels.
type PaymentMethod string

const (
	PaymentBank    PaymentMethod = "bank"
	PaymentCard    PaymentMethod = "card"
	PaymentEwallet PaymentMethod = "ewallet"
)

// Valid reports whether the method is one of the known channels.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBank, PaymentCard, PaymentEwallet:
		return true
	}
	return false
}

// DonationType classifies a donation as general-pool or program-scoped.
type DonationType string

const (
	DonationGeneral DonationType = "general"
	DonationProgram DonationType = "program"
)

// DonationStatus is recorded at write time. Payment capture happens outside
// this system, so every accepted submission lands as completed.
const DonationStatusCompleted = "completed"

// Donation represents a one-time contribution. Rows are immutable once
// written; there is no update or delete path for them.
type Donation struct {
	ID            string
	Name          string
	Email         string
	Amount        int64
	PaymentMethod PaymentMethod
	Type          DonationType
	Status        string
	ProgramID     *string
	CreatedAt     time.Time
}
