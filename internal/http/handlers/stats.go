package handlers

import (
	"net/http"

	"kakasaku_backend/internal/i18nfmt"
	"kakasaku_backend/internal/sqlinline"
	"kakasaku_backend/internal/stats"
)

func snapshotDTO(snap stats.Snapshot) map[string]any {
	return map[string]any{
		"raised":           snap.Raised,
		"raised_formatted": i18nfmt.Rupiah(snap.Raised),
		"target":           snap.Target,
		"target_formatted": i18nfmt.Rupiah(snap.Target),
		"donors":           snap.Donors,
		"progress":         snap.Progress(),
	}
}

// AdminSummary aggregates the dashboard headline numbers in one query.
func (a *App) AdminSummary(w http.ResponseWriter, r *http.Request) {
	var (
		generalRaised int64
		generalDonors int64
		memberMonthly int64
		memberCount   int64
		membersPaid   int64
		membersUnpaid int64
		programCount  int64
	)
	err := a.SQL.QueryRow(r.Context(), sqlinline.QDashboardSummary).Scan(
		&generalRaised,
		&generalDonors,
		&memberMonthly,
		&memberCount,
		&membersPaid,
		&membersUnpaid,
		&programCount,
	)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"general_raised":           generalRaised,
		"general_raised_formatted": i18nfmt.Rupiah(generalRaised),
		"general_donors":           generalDonors,
		"member_monthly_total":     memberMonthly,
		"member_monthly_formatted": i18nfmt.Rupiah(memberMonthly),
		"member_count":             memberCount,
		"members_paid":             membersPaid,
		"members_unpaid":           membersUnpaid,
		"program_count":            programCount,
	})
}
