package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking voucher PDF handed to approved travelers.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
	Loader      func(int64) (models.Booking, error)
}

func (s DocsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.BookingRepository{DB: db}
}

func (s DocsService) load(bookingID int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	return b, nil
}

// GenerateVoucher builds the voucher for an approved booking. Pending and
// canceled bookings have nothing to hand out.
func (s DocsService) GenerateVoucher(bookingID int64) ([]byte, string, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if b.Status != models.BookingApproved {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "voucher is only available for approved bookings"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_voucher", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(b)
}

func buildVoucherPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference     : %s", safe(b.ReferenceCode, "-")),
		fmt.Sprintf("Traveler      : %s", safe(b.FullName, "-")),
		fmt.Sprintf("Email         : %s", safe(b.Email, "-")),
		fmt.Sprintf("Phone         : %s", safe(b.Phone, "-")),
		fmt.Sprintf("Tour          : %s", safe(b.TourName, "-")),
		fmt.Sprintf("Tour level    : %s", safe(b.TourLevel, "-")),
		fmt.Sprintf("Arrival       : %s", safe(b.ArrivalDate, "-")),
		fmt.Sprintf("Party         : %d adults, %d children, %d rooms", b.Adults, b.Children, b.Rooms),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	if b.DiscountPercent > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Base total    : %s", utils.FormatUSD(b.BaseTotal)))
		pdf.Ln(7)
		pdf.Cell(0, 7, fmt.Sprintf("Discount      : %.0f%%", b.DiscountPercent))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total         : %s", utils.FormatUSD(b.Total)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this voucher together with the email used at booking. Issued "+time.Now().Format("2006-01-02 15:04")+".", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("VOUCHER_%s.pdf", safeFilenamePart(b.ReferenceCode))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "booking"
	}
	return b.String()
}
