package i18nfmt

import "fmt"

// Messages is the notification catalog for one locale.
type Messages struct {
	FormIncomplete      string
	AmountTooSmall      string
	DonationSuccess     string
	DuplicateEmail      string
	MemberSuccess       string
	StatusUpdated       string
	ProgramCreated      string
	ProgramUpdated      string
	ProgramDeleted      string
	LoginFailed         string
	Unauthorized        string
	NotFound            string
	GenericError        string
	donationWithProgram string
	statusPaid          string
	statusUnpaid        string
}

var catalogID = Messages{
	FormIncomplete:      "Mohon lengkapi semua data yang diperlukan.",
	AmountTooSmall:      fmt.Sprintf("Minimal donasi adalah %s.", Rupiah(10_000)),
	DonationSuccess:     "Donasi Berhasil! Terima kasih atas kebaikan Anda. Detail pembayaran akan dikirim ke email Anda.",
	DuplicateEmail:      "Email ini sudah terdaftar sebagai anggota Kakasaku.",
	MemberSuccess:       "Pendaftaran Berhasil! Selamat bergabung dengan Kakasaku. Informasi pembayaran akan dikirim ke email Anda.",
	StatusUpdated:       "Status pembayaran diperbarui menjadi %s.",
	ProgramCreated:      "Program baru berhasil ditambahkan.",
	ProgramUpdated:      "Program berhasil diperbarui.",
	ProgramDeleted:      "Program dihapus.",
	LoginFailed:         "Email atau kata sandi salah.",
	Unauthorized:        "Sesi Anda telah berakhir. Silakan masuk kembali.",
	NotFound:            "Data tidak ditemukan.",
	GenericError:        "Terjadi kesalahan. Mohon coba lagi nanti.",
	donationWithProgram: "Donasi %s untuk program %q berhasil dicatat. Terima kasih!",
	statusPaid:          "Lunas",
	statusUnpaid:        "Belum Bayar",
}

var catalogEN = Messages{
	FormIncomplete:      "Please complete all required fields.",
	AmountTooSmall:      fmt.Sprintf("The minimum donation is %s.", Rupiah(10_000)),
	DonationSuccess:     "Donation received! Thank you for your kindness. Payment details will be sent to your email.",
	DuplicateEmail:      "This email is already registered as a Kakasaku member.",
	MemberSuccess:       "Registration complete! Welcome to Kakasaku. Payment information will be sent to your email.",
	StatusUpdated:       "Payment status updated to %s.",
	ProgramCreated:      "New program added.",
	ProgramUpdated:      "Program updated.",
	ProgramDeleted:      "Program deleted.",
	LoginFailed:         "Incorrect email or password.",
	Unauthorized:        "Your session has ended. Please sign in again.",
	NotFound:            "Record not found.",
	GenericError:        "Something went wrong. Please try again later.",
	donationWithProgram: "Your donation of %s to %q has been recorded. Thank you!",
	statusPaid:          "Paid",
	statusUnpaid:        "Unpaid",
}

// For returns the catalog for a normalized locale ("id" or anything else
// for English).
func For(locale string) Messages {
	if locale == "id" {
		return catalogID
	}
	return catalogEN
}

// DonationWithProgram renders the program-scoped success message with the
// formatted amount and the program title.
func (m Messages) DonationWithProgram(amount int64, title string) string {
	return fmt.Sprintf(m.donationWithProgram, Rupiah(amount), title)
}

// PaymentStatusUpdated renders the toggle confirmation for the new status.
func (m Messages) PaymentStatusUpdated(paid bool) string {
	label := m.statusUnpaid
	if paid {
		label = m.statusPaid
	}
	return fmt.Sprintf(m.StatusUpdated, label)
}
