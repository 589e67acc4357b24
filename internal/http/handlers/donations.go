package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/i18nfmt"
	"kakasaku_backend/internal/realtime"
)

type donationRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	PresetAmount  *int64  `json:"preset_amount"`
	CustomAmount  string  `json:"custom_amount"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	ProgramID     *string `json:"program_id"`
}

// resolveAmount picks the preset when one is selected, otherwise parses the
// free-text amount. ok=false means no usable amount was supplied at all,
// which is an incomplete form rather than a too-small one.
func resolveAmount(req donationRequest) (int64, bool) {
	if req.PresetAmount != nil && *req.PresetAmount > 0 {
		return *req.PresetAmount, true
	}
	custom := strings.TrimSpace(req.CustomAmount)
	if custom == "" {
		return 0, false
	}
	amount, err := strconv.ParseInt(custom, 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

type donationRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Amount        int64   `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	ProgramID     *string `json:"program_id"`
	CreatedAt     string  `json:"created_at"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	if !domain.PaymentMethod(req.PaymentMethod).Valid() {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}

	amount, ok := resolveAmount(req)
	if !ok {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	if amount < domain.MinDonationAmount {
		// Pesan khusus, bukan pesan form tidak lengkap.
		a.error(w, http.StatusBadRequest, "amount_too_small", m.AmountTooSmall)
		return
	}

	donation := &domain.Donation{
		Name:          req.Name,
		Email:         req.Email,
		Amount:        amount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Type:          domain.DonationGeneral,
		Status:        domain.DonationStatusCompleted,
	}

	message := m.DonationSuccess
	if req.ProgramID != nil && *req.ProgramID != "" {
		program, err := a.Programs.GetByID(r.Context(), *req.ProgramID)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		donation.Type = domain.DonationProgram
		donation.ProgramID = req.ProgramID
		message = m.DonationWithProgram(amount, program.Title)
	}

	// The insert never touches the programs table; the database trigger
	// owns raised/donors.
	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.fail(w, r, err)
		return
	}

	row := donationToRow(*donation, a.locale(r))
	payload, _ := json.Marshal(row)
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionDonations,
		Op:         realtime.OpInsert,
		RecordID:   donation.ID,
		NewRow:     payload,
	})

	a.json(w, http.StatusCreated, map[string]any{
		"id":               donation.ID,
		"amount":           donation.Amount,
		"amount_formatted": i18nfmt.Rupiah(donation.Amount),
		"message":          message,
	})
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Donations.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	locale := a.locale(r)
	rows := make([]map[string]any, 0, len(items))
	for _, d := range items {
		row := donationToRow(d, locale)
		rows = append(rows, map[string]any{
			"id":                 row.ID,
			"name":               row.Name,
			"email":              row.Email,
			"amount":             row.Amount,
			"amount_formatted":   i18nfmt.Rupiah(d.Amount),
			"payment_method":     row.PaymentMethod,
			"type":               row.Type,
			"status":             row.Status,
			"program_id":         row.ProgramID,
			"created_at":         d.CreatedAt,
			"created_at_display": i18nfmt.Date(locale, d.CreatedAt),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": rows})
}

// DonationsStats serves the live general-pool snapshot.
func (a *App) DonationsStats(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Stats.General(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, snapshotDTO(snap))
}

func donationToRow(d domain.Donation, locale string) donationRow {
	return donationRow{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		Amount:        d.Amount,
		PaymentMethod: string(d.PaymentMethod),
		Type:          string(d.Type),
		Status:        d.Status,
		ProgramID:     d.ProgramID,
		CreatedAt:     d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
