package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// BookingService owns the submission flow: validate, price, store, and the
// independent lookup by reference code + email.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	TourRepo    repositories.TourRepository
	PriceRepo   repositories.PriceRepository
	PromoRepo   repositories.PromotionRepository
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) tours() repositories.TourRepository {
	if s.TourRepo.DB != nil {
		return s.TourRepo
	}
	return repositories.TourRepository{DB: s.db()}
}

func (s BookingService) prices() repositories.PriceRepository {
	if s.PriceRepo.DB != nil {
		return s.PriceRepo
	}
	return repositories.PriceRepository{DB: s.db()}
}

func (s BookingService) promos() repositories.PromotionRepository {
	if s.PromoRepo.DB != nil {
		return s.PromoRepo
	}
	return repositories.PromotionRepository{DB: s.db()}
}

// ValidateInput checks every field and reports all failures at once, so the
// form can show one message per field. No storage is touched on failure.
func ValidateInput(in models.BookingInput, sheet domain.PriceSheet) domain.FieldErrors {
	var errs domain.FieldErrors
	add := func(field, msg string) {
		errs = append(errs, domain.ValidationError{Field: field, Msg: msg})
	}

	if in.TourID <= 0 {
		add("tour_id", "tour is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		add("full_name", "full name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		add("email", "email is required")
	} else if validate.Var(in.Email, "email") != nil {
		add("email", "email is not valid")
	}
	if strings.TrimSpace(in.Phone) == "" {
		add("phone", "phone is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		add("country", "country is required")
	}
	if strings.TrimSpace(in.Region) == "" {
		add("region", "region is required")
	}
	if strings.TrimSpace(in.ArrivalDate) == "" {
		add("arrival_date", "arrival date is required")
	} else if _, err := utils.ParseDate(in.ArrivalDate); err != nil {
		add("arrival_date", "arrival date must be YYYY-MM-DD")
	}
	if in.Adults < 1 {
		add("adults", "at least one adult is required")
	}
	if in.Children < 0 {
		add("children", "children count cannot be negative")
	}
	if in.Rooms < 1 {
		add("rooms", "at least one room is required")
	}
	if strings.TrimSpace(in.TourLevel) == "" {
		add("tour_level", "tour level is required")
	} else if sheet != nil && !sheet.HasCategory(in.TourLevel) {
		add("tour_level", "tour level is not offered for this tour")
	}

	return errs
}

// Submit runs the whole flow once: validate, quote with the tour's active
// promotion, and insert with a fresh reference code in pending status.
// Exactly one insert per call; callers never retry on failure.
func (s BookingService) Submit(in models.BookingInput) (models.Booking, error) {
	in = cleanInput(in)

	var sheet domain.PriceSheet
	if in.TourID > 0 {
		tour, err := s.tours().GetByID(in.TourID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Booking{}, domain.FieldErrors{{Field: "tour_id", Msg: "tour not found"}}
			}
			return models.Booking{}, domain.InternalError{Msg: "failed to load tour", Err: err}
		}
		in.TourID = tour.ID
		if sheet, err = s.prices().GetSheet(tour.ID); err != nil {
			return models.Booking{}, domain.InternalError{Msg: "failed to load price sheet", Err: err}
		}
	}

	if errs := ValidateInput(in, sheet); len(errs) > 0 {
		return models.Booking{}, errs
	}

	discount, err := s.promos().ActivePercent(in.TourID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to resolve promotion", Err: err}
	}

	// A sheet can legitimately miss the chosen category/band combination;
	// the booking is still taken and priced manually during review.
	var baseTotal, total float64
	if q := domain.QuotePrice(sheet, in.TourLevel, in.PartySize(), discount); q.Available() {
		baseTotal = *q.BasePrice
		total = *q.DiscountedPrice
	}

	booking := models.Booking{
		ReferenceCode:   NewReferenceCode("TRB"),
		TourID:          in.TourID,
		FullName:        in.FullName,
		Email:           in.Email,
		Phone:           in.Phone,
		Country:         in.Country,
		Region:          in.Region,
		Adults:          in.Adults,
		Children:        in.Children,
		Rooms:           in.Rooms,
		ArrivalDate:     in.ArrivalDate,
		TourLevel:       in.TourLevel,
		SpecialRequests: in.SpecialRequests,
		DiscountPercent: discount,
		BaseTotal:       baseTotal,
		Total:           total,
		Status:          models.BookingPending,
	}

	id, err := s.bookings().Insert(booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to store booking", Err: err}
	}
	booking.ID = id

	utils.LogEvent(s.RequestID, "booking", "submit",
		fmt.Sprintf("id=%d ref=%s tour=%d party=%d", id, booking.ReferenceCode, booking.TourID, in.PartySize()))
	return booking, nil
}

// Lookup resolves a reference code + email pair. A miss is a normal outcome
// (mistyped details), reported as not-found rather than a server fault.
func (s BookingService) Lookup(referenceCode, email string) (models.Booking, error) {
	referenceCode = strings.TrimSpace(referenceCode)
	email = strings.TrimSpace(email)
	if referenceCode == "" || email == "" {
		return models.Booking{}, domain.ValidationError{Field: "reference_code", Msg: "reference code and email are required"}
	}

	booking, err := s.bookings().GetByReference(referenceCode, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to look up booking", Err: err}
	}

	// Reproduce the display total from the stored base and discount so the
	// lookup view always matches the quotation formula.
	booking.Total = utils.RoundMoney(booking.BaseTotal * (1 - booking.DiscountPercent/100))

	utils.LogEvent(s.RequestID, "booking", "lookup", fmt.Sprintf("ref=%s status=%s", referenceCode, booking.Status))
	return booking, nil
}

// ListAdmin pages through bookings for the dashboard, optionally filtered
// by a normalized status.
func (s BookingService) ListAdmin(status string, page, pageSize int) ([]models.Booking, int, error) {
	bookings, total, err := s.bookings().List(status, page, pageSize)
	if err != nil {
		return nil, 0, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	return bookings, total, nil
}

// Decide moves a booking out of pending: approved or canceled. The status
// vocabulary accepts the accept/declined aliases some callers send.
func (s BookingService) Decide(id int64, status string) (models.Booking, error) {
	normalized := models.NormalizeStatus(status)
	if normalized != models.BookingApproved && normalized != models.BookingCanceled {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "status must be approved or canceled"}
	}

	booking, err := s.bookings().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	if booking.Status == normalized {
		return booking, nil
	}

	if err := s.bookings().UpdateStatus(id, normalized); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	booking.Status = normalized

	utils.LogEvent(s.RequestID, "booking", "decide", fmt.Sprintf("id=%d status=%s", id, normalized))
	return booking, nil
}

func cleanInput(in models.BookingInput) models.BookingInput {
	in.FullName = utils.NormalizeSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = utils.NormalizePhone(in.Phone)
	in.Country = strings.TrimSpace(in.Country)
	in.Region = strings.TrimSpace(in.Region)
	in.ArrivalDate = strings.TrimSpace(in.ArrivalDate)
	in.TourLevel = strings.TrimSpace(in.TourLevel)
	in.SpecialRequests = strings.TrimSpace(in.SpecialRequests)
	return in
}

// NewReferenceCode issues an opaque, prefixed code like TRB-9F3A2C41.
func NewReferenceCode(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + raw[:8]
}
