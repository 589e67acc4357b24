package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/middleware"
	"kakasaku_backend/internal/realtime"
)

// withURLParam runs a handler through a one-route chi router so URL
// parameters resolve the same way they do in production.
func withURLParam(t *testing.T, handler http.HandlerFunc, method, pattern, target, body, locale string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if locale != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.LocaleKey, locale))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMembersCreate(t *testing.T) {
	app, _, _, members, bus := newTestApp()

	body := `{"name":"Budi","email":"budi@mail.com","phone":"0812345678","monthly_amount":100000}`
	rec := doJSON(t, app.MembersCreate, http.MethodPost, "/v1/kakasaku/members", body, "id")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(members.created) != 1 {
		t.Fatalf("created %d members, want 1", len(members.created))
	}
	m := members.created[0]
	if m.PaymentStatus != domain.PaymentUnpaid {
		t.Errorf("payment status = %s, want unpaid", m.PaymentStatus)
	}
	if m.DueDate.Day() != 1 || !m.DueDate.After(time.Now()) {
		t.Errorf("due date = %v, want first of next month", m.DueDate)
	}

	msg, _ := decodeBody(t, rec)["message"].(string)
	if !strings.Contains(msg, "Pendaftaran Berhasil") {
		t.Errorf("message = %q", msg)
	}
	if len(bus.changes) != 1 || bus.changes[0].Collection != realtime.CollectionMembers {
		t.Errorf("changes = %+v, want one member insert", bus.changes)
	}
}

func TestMembersCreateDuplicateEmail(t *testing.T) {
	app, _, _, members, bus := newTestApp()
	members.createErr = domain.ErrDuplicateEmail

	body := `{"name":"Budi","email":"budi@mail.com","phone":"0812345678","monthly_amount":100000}`
	rec := doJSON(t, app.MembersCreate, http.MethodPost, "/v1/kakasaku/members", body, "id")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "duplicate_email" {
		t.Errorf("error code = %q", code)
	}
	if len(bus.changes) != 0 {
		t.Errorf("published %d changes, want none", len(bus.changes))
	}
}

func TestMembersCreateIncomplete(t *testing.T) {
	app, _, _, members, _ := newTestApp()

	cases := []string{
		`{"email":"x@mail.com","phone":"08","monthly_amount":100000}`,
		`{"name":"X","email":"x@mail.com","phone":"08","monthly_amount":0}`,
		`{"name":"X","email":"bad","phone":"08","monthly_amount":100000}`,
	}
	for _, body := range cases {
		rec := doJSON(t, app.MembersCreate, http.MethodPost, "/v1/kakasaku/members", body, "id")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if len(members.created) != 0 {
		t.Errorf("created %d members, want none", len(members.created))
	}
}

func TestMemberTogglePayment(t *testing.T) {
	app, _, _, members, bus := newTestApp()
	members.byID["mem-1"] = domain.Member{
		ID:            "mem-1",
		Name:          "Budi",
		PaymentStatus: domain.PaymentUnpaid,
		MonthlyAmount: 100_000,
	}

	rec := withURLParam(t, app.MemberTogglePayment, http.MethodPost,
		"/v1/admin/kakasaku/members/{id}/toggle", "/v1/admin/kakasaku/members/mem-1/toggle",
		`{"current_status":"unpaid"}`, "id")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := members.byID["mem-1"].PaymentStatus; got != domain.PaymentPaid {
		t.Errorf("stored status = %s, want paid", got)
	}

	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "Lunas") {
		t.Errorf("message = %q, want Lunas", msg)
	}
	member, _ := resp["member"].(map[string]any)
	if member["payment_status"] != "paid" {
		t.Errorf("member payment_status = %v", member["payment_status"])
	}

	if len(bus.changes) != 1 || bus.changes[0].Op != realtime.OpUpdate || bus.changes[0].RecordID != "mem-1" {
		t.Errorf("changes = %+v, want one member update", bus.changes)
	}
}

func TestMemberTogglePaymentBackToUnpaid(t *testing.T) {
	app, _, _, members, _ := newTestApp()
	members.byID["mem-1"] = domain.Member{ID: "mem-1", PaymentStatus: domain.PaymentPaid}

	rec := withURLParam(t, app.MemberTogglePayment, http.MethodPost,
		"/v1/admin/kakasaku/members/{id}/toggle", "/v1/admin/kakasaku/members/mem-1/toggle",
		`{"current_status":"paid"}`, "id")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := members.byID["mem-1"].PaymentStatus; got != domain.PaymentUnpaid {
		t.Errorf("stored status = %s, want unpaid", got)
	}
	msg, _ := decodeBody(t, rec)["message"].(string)
	if !strings.Contains(msg, "Belum Bayar") {
		t.Errorf("message = %q, want Belum Bayar", msg)
	}
}

func TestMemberToggleUnknownMember(t *testing.T) {
	app, _, _, _, _ := newTestApp()

	rec := withURLParam(t, app.MemberTogglePayment, http.MethodPost,
		"/v1/admin/kakasaku/members/{id}/toggle", "/v1/admin/kakasaku/members/nope/toggle",
		`{"current_status":"unpaid"}`, "id")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMemberToggleInvalidStatus(t *testing.T) {
	app, _, _, members, _ := newTestApp()
	members.byID["mem-1"] = domain.Member{ID: "mem-1", PaymentStatus: domain.PaymentUnpaid}

	rec := withURLParam(t, app.MemberTogglePayment, http.MethodPost,
		"/v1/admin/kakasaku/members/{id}/toggle", "/v1/admin/kakasaku/members/mem-1/toggle",
		`{"current_status":"pending"}`, "id")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := members.byID["mem-1"].PaymentStatus; got != domain.PaymentUnpaid {
		t.Errorf("stored status changed to %s", got)
	}
}
