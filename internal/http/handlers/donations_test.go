package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/middleware"
	"kakasaku_backend/internal/realtime"
	"kakasaku_backend/internal/stats"
)

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body, locale string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if locale != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.LocaleKey, locale))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestDonationsCreateGeneral(t *testing.T) {
	app, donations, _, _, bus := newTestApp()

	body := `{"name":"Budi","email":"budi@mail.com","preset_amount":50000,"payment_method":"bank"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if len(donations.created) != 1 {
		t.Fatalf("created = %d donations, want 1", len(donations.created))
	}
	d := donations.created[0]
	if d.Type != domain.DonationGeneral || d.ProgramID != nil {
		t.Errorf("donation = %+v, want general pool with no program", d)
	}
	if d.Amount != 50_000 || d.Status != domain.DonationStatusCompleted {
		t.Errorf("amount/status = %d/%s", d.Amount, d.Status)
	}

	resp := decodeBody(t, rec)
	if resp["amount_formatted"] != "Rp 50.000" {
		t.Errorf("amount_formatted = %v", resp["amount_formatted"])
	}
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "Donasi Berhasil") {
		t.Errorf("message = %q, want Indonesian success text", msg)
	}

	if len(bus.changes) != 1 {
		t.Fatalf("published %d changes, want 1", len(bus.changes))
	}
	change := bus.changes[0]
	if change.Collection != realtime.CollectionDonations || change.Op != realtime.OpInsert {
		t.Errorf("change = %s/%s", change.Collection, change.Op)
	}
}

func TestDonationsCreateCustomAmount(t *testing.T) {
	app, donations, _, _, _ := newTestApp()

	body := `{"name":"Sari","email":"sari@mail.com","custom_amount":"75000","payment_method":"ewallet"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if donations.created[0].Amount != 75_000 {
		t.Errorf("amount = %d, want 75000", donations.created[0].Amount)
	}
}

func TestDonationsCreateProgramScoped(t *testing.T) {
	app, donations, programs, _, _ := newTestApp()
	programs.byID["prog-1"] = domain.Program{ID: "prog-1", Title: "Beasiswa Anak Nelayan", Target: 50_000_000}

	body := `{"name":"Budi","email":"budi@mail.com","preset_amount":100000,"payment_method":"card","program_id":"prog-1"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	d := donations.created[0]
	if d.Type != domain.DonationProgram || d.ProgramID == nil || *d.ProgramID != "prog-1" {
		t.Fatalf("donation = %+v, want program-scoped", d)
	}

	msg, _ := decodeBody(t, rec)["message"].(string)
	if !strings.Contains(msg, "Beasiswa Anak Nelayan") || !strings.Contains(msg, "Rp 100.000") {
		t.Errorf("message = %q, want program title and formatted amount", msg)
	}

	// The insert is the only write; program totals belong to the database
	// trigger, not this handler.
	if len(programs.updated) != 0 {
		t.Errorf("handler updated programs directly: %+v", programs.updated)
	}
}

func TestDonationsCreateBelowMinimum(t *testing.T) {
	app, donations, programs, _, bus := newTestApp()
	programs.byID["prog-1"] = domain.Program{ID: "prog-1", Title: "Program"}

	body := `{"name":"Sari","email":"sari@mail.com","custom_amount":"5000","payment_method":"bank","program_id":"prog-1"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "amount_too_small" {
		t.Errorf("error code = %q", code)
	}
	if len(donations.created) != 0 {
		t.Errorf("created %d donations, want none", len(donations.created))
	}
	if len(bus.changes) != 0 {
		t.Errorf("published %d changes, want none", len(bus.changes))
	}
}

func TestDonationsCreateIncompleteForm(t *testing.T) {
	app, donations, _, _, _ := newTestApp()

	cases := map[string]string{
		"missing name":        `{"email":"x@mail.com","preset_amount":50000,"payment_method":"bank"}`,
		"bad email":           `{"name":"X","email":"not-an-email","preset_amount":50000,"payment_method":"bank"}`,
		"no amount":           `{"name":"X","email":"x@mail.com","payment_method":"bank"}`,
		"unparseable amount":  `{"name":"X","email":"x@mail.com","custom_amount":"lima ribu","payment_method":"bank"}`,
		"bad payment method":  `{"name":"X","email":"x@mail.com","preset_amount":50000,"payment_method":"cash"}`,
		"malformed json body": `{"name":`,
	}
	for name, body := range cases {
		rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
			continue
		}
		if code := errorCode(t, rec); code != "invalid_payload" {
			t.Errorf("%s: error code = %q", name, code)
		}
	}
	if len(donations.created) != 0 {
		t.Errorf("created %d donations, want none", len(donations.created))
	}
}

func TestDonationsCreateUnknownProgram(t *testing.T) {
	app, donations, _, _, _ := newTestApp()

	body := `{"name":"X","email":"x@mail.com","preset_amount":50000,"payment_method":"bank","program_id":"missing"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "id")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(donations.created) != 0 {
		t.Errorf("donation written for unknown program")
	}
}

func TestDonationsCreateEnglishLocale(t *testing.T) {
	app, _, _, _, _ := newTestApp()

	body := `{"name":"Jane","email":"jane@mail.com","preset_amount":50000,"payment_method":"bank"}`
	rec := doJSON(t, app.DonationsCreate, http.MethodPost, "/v1/donations", body, "en")

	msg, _ := decodeBody(t, rec)["message"].(string)
	if !strings.Contains(msg, "Donation received") {
		t.Errorf("message = %q, want English text", msg)
	}
}

func TestDonationsStats(t *testing.T) {
	app, _, _, _, _ := newTestApp()
	app.Stats = &fakeProgress{general: stats.Snapshot{Raised: 25_000_000, Target: 50_000_000, Donors: 12}}

	rec := doJSON(t, app.DonationsStats, http.MethodGet, "/v1/donations/stats", "", "id")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["progress"].(float64) != 50.0 {
		t.Errorf("progress = %v, want 50", resp["progress"])
	}
	if resp["raised_formatted"] != "Rp 25.000.000" {
		t.Errorf("raised_formatted = %v", resp["raised_formatted"])
	}
}

func TestDonationsList(t *testing.T) {
	app, donations, _, _, _ := newTestApp()
	pid := "prog-1"
	donations.items = []domain.Donation{
		{ID: "d1", Name: "Budi", Amount: 50_000, Type: domain.DonationGeneral, Status: domain.DonationStatusCompleted, PaymentMethod: domain.PaymentBank},
		{ID: "d2", Name: "Sari", Amount: 100_000, Type: domain.DonationProgram, ProgramID: &pid, Status: domain.DonationStatusCompleted, PaymentMethod: domain.PaymentCard},
	}

	rec := doJSON(t, app.DonationsList, http.MethodGet, "/v1/admin/donations", "", "id")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
}
