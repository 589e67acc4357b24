package domain

import "time"

// ProgramCategory enumerates fundraising campaign categories.
type ProgramCategory string

const (
	CategoryEducation   ProgramCategory = "education"
	CategoryHealth      ProgramCategory = "health"
	CategoryMSME        ProgramCategory = "msme"
	CategoryEnvironment ProgramCategory = "environment"
	CategoryOther       ProgramCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c ProgramCategory) Valid() bool {
	switch c {
	case CategoryEducation, CategoryHealth, CategoryMSME, CategoryEnvironment, CategoryOther:
		return true
	}
	return false
}

// Program is a fundraising campaign with a target and a running total.
// Raised and Donors are maintained by the database trigger that fires on
// program-tagged donation inserts; application code never writes them.
type Program struct {
	ID          string
	Title       string
	Description string
	Category    ProgramCategory
	Target      int64
	Raised      int64
	Donors      int64
	CreatedAt   time.Time
}

// Progress returns the percentage of the target reached, clamped to
// [0, 100]. A zero or negative target reports 0 rather than dividing.
func (p Program) Progress() float64 {
	return ProgressPercent(p.Raised, p.Target)
}

// ProgressPercent computes min(raised/target*100, 100) without ever
// producing NaN or a negative value.
func ProgressPercent(raised, target int64) float64 {
	if target <= 0 || raised <= 0 {
		return 0
	}
	pct := float64(raised) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
