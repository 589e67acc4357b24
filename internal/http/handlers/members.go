package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/i18nfmt"
	"kakasaku_backend/internal/realtime"
)

type memberRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	MonthlyAmount int64  `json:"monthly_amount" validate:"required,gt=0"`
}

type togglePaymentRequest struct {
	CurrentStatus string `json:"current_status" validate:"required"`
}

func (a *App) MembersCreate(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}

	member := &domain.Member{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyAmount: req.MonthlyAmount,
		PaymentStatus: domain.PaymentUnpaid,
		DueDate:       domain.NextDueDate(time.Now()),
	}
	// Duplikat email terdeteksi lewat unique index, bukan pre-check.
	if err := a.Members.Create(r.Context(), member); err != nil {
		a.fail(w, r, err)
		return
	}

	payload, _ := json.Marshal(memberToRow(*member, a.locale(r)))
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionMembers,
		Op:         realtime.OpInsert,
		RecordID:   member.ID,
		NewRow:     payload,
	})

	a.json(w, http.StatusCreated, map[string]any{
		"id":      member.ID,
		"message": m.MemberSuccess,
	})
}

func (a *App) MembersList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Members.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	locale := a.locale(r)
	rows := make([]map[string]any, 0, len(items))
	for _, mem := range items {
		rows = append(rows, memberToRow(mem, locale))
	}
	a.json(w, http.StatusOK, map[string]any{"items": rows})
}

// MemberTogglePayment flips a member between paid and unpaid. The client
// sends the status it is looking at so the write is an explicit flip of
// that value, not of whatever happens to be stored now.
func (a *App) MemberTogglePayment(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)
	id := chi.URLParam(r, "id")

	var req togglePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	current := domain.PaymentStatus(req.CurrentStatus)
	if !current.Valid() {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}

	updated, err := a.Members.SetPaymentStatus(r.Context(), id, current.Opposite())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	row := memberToRow(*updated, a.locale(r))
	payload, _ := json.Marshal(row)
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionMembers,
		Op:         realtime.OpUpdate,
		RecordID:   updated.ID,
		NewRow:     payload,
	})

	a.json(w, http.StatusOK, map[string]any{
		"member":  row,
		"message": m.PaymentStatusUpdated(updated.PaymentStatus == domain.PaymentPaid),
	})
}

func memberToRow(mem domain.Member, locale string) map[string]any {
	return map[string]any{
		"id":                       mem.ID,
		"name":                     mem.Name,
		"email":                    mem.Email,
		"phone":                    mem.Phone,
		"monthly_amount":           mem.MonthlyAmount,
		"monthly_amount_formatted": i18nfmt.Rupiah(mem.MonthlyAmount),
		"payment_status":           string(mem.PaymentStatus),
		"due_date":                 mem.DueDate.Format("2006-01-02"),
		"due_date_display":         i18nfmt.Date(locale, mem.DueDate),
		"created_at":               mem.CreatedAt,
	}
}
