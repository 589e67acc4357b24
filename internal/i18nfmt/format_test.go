package i18nfmt

import (
	"strings"
	"testing"
	"time"
)

func TestRupiahGrouping(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{10_000, "Rp 10.000"},
		{50_000, "Rp 50.000"},
		{1_000_000, "Rp 1.000.000"},
		{50_000_000, "Rp 50.000.000"},
		{0, "Rp 0"},
	}
	for _, tt := range tests {
		if got := Rupiah(tt.amount); got != tt.want {
			t.Errorf("Rupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestDateLocalized(t *testing.T) {
	ts := time.Date(2026, time.August, 2, 10, 0, 0, 0, time.UTC)
	if got := Date("id", ts); got != "2 Agu 2026" {
		t.Errorf("Date(id) = %q, want %q", got, "2 Agu 2026")
	}
	if got := Date("en", ts); got != "Aug 2, 2026" {
		t.Errorf("Date(en) = %q, want %q", got, "Aug 2, 2026")
	}
	if got := Date("id", time.Time{}); got != "-" {
		t.Errorf("Date(zero) = %q, want %q", got, "-")
	}
}

func TestCatalogSelection(t *testing.T) {
	if !strings.Contains(For("id").AmountTooSmall, "Rp 10.000") {
		t.Errorf("id catalog should name the minimum: %q", For("id").AmountTooSmall)
	}
	if For("en").FormIncomplete == For("id").FormIncomplete {
		t.Error("locales should differ")
	}
	if For("fr").GenericError != For("en").GenericError {
		t.Error("unknown locale should fall back to English")
	}
}

func TestDonationWithProgramMessage(t *testing.T) {
	msg := For("id").DonationWithProgram(250_000, "Bantuan Pendidikan")
	if !strings.Contains(msg, "Rp 250.000") || !strings.Contains(msg, "Bantuan Pendidikan") {
		t.Errorf("message missing amount or title: %q", msg)
	}
}

func TestPaymentStatusUpdatedMessage(t *testing.T) {
	if !strings.Contains(For("id").PaymentStatusUpdated(true), "Lunas") {
		t.Error("paid message should say Lunas")
	}
	if !strings.Contains(For("id").PaymentStatusUpdated(false), "Belum Bayar") {
		t.Error("unpaid message should say Belum Bayar")
	}
}
