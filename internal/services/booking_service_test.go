package services

import (
	"database/sql"
	"errors"
	"testing"

	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func tourRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "name", "summary", "description",
		"destination", "duration_days", "cover_image",
		"featured", "created_at", "updated_at",
	}).AddRow(1, "atlas-trek", "Atlas Trek", "", "", "Morocco", 5, "", 0, "", "")
}

func priceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"tour_id", "category", "band", "price"}).
		AddRow(1, "3-stars", "2", 100.0).
		AddRow(1, "3-stars", "3-4", 90.0).
		AddRow(1, "3-stars", "5<n", 80.0)
}

func validInput() models.BookingInput {
	return models.BookingInput{
		TourID:      1,
		FullName:    "Ada Traveler",
		Email:       "ada@example.com",
		Phone:       "+212600000000",
		Country:     "Morocco",
		Region:      "Marrakech",
		Adults:      2,
		Children:    0,
		Rooms:       1,
		ArrivalDate: "2026-10-01",
		TourLevel:   "3-stars",
	}
}

func TestBookingSubmitComputesTotalsAndStoresPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tours").WithArgs(int64(1)).WillReturnRows(tourRows())
	mock.ExpectQuery("FROM tour_prices").WithArgs(int64(1)).WillReturnRows(priceRows())
	mock.ExpectQuery("FROM promotions").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"percent"}).AddRow(10.0))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))

	svc := BookingService{DB: db}
	booking, err := svc.Submit(validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if booking.ID != 42 {
		t.Fatalf("booking id = %d, want 42", booking.ID)
	}
	if booking.Status != models.BookingPending {
		t.Fatalf("status = %q, want pending", booking.Status)
	}
	if booking.ReferenceCode == "" {
		t.Fatalf("reference code must be issued")
	}
	// 2 travelers in band "2" at 100 each, 10% promotion
	if booking.BaseTotal != 200 {
		t.Fatalf("base total = %v, want 200", booking.BaseTotal)
	}
	if booking.Total != 180 {
		t.Fatalf("total = %v, want 180", booking.Total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingSubmitMissingEmailWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tours").WithArgs(int64(1)).WillReturnRows(tourRows())
	mock.ExpectQuery("FROM tour_prices").WithArgs(int64(1)).WillReturnRows(priceRows())
	// no promotion query, no insert: validation must stop the flow

	in := validInput()
	in.Email = ""

	svc := BookingService{DB: db}
	_, err = svc.Submit(in)

	var fields domain.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields.Fields()["email"]; !ok {
		t.Fatalf("expected an email field error, got %v", fields.Fields())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingSubmitCollectsAllFieldErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tours").WithArgs(int64(1)).WillReturnRows(tourRows())
	mock.ExpectQuery("FROM tour_prices").WithArgs(int64(1)).WillReturnRows(priceRows())

	in := validInput()
	in.Email = "not-an-email"
	in.Adults = 0
	in.TourLevel = "9-stars"

	svc := BookingService{DB: db}
	_, err = svc.Submit(in)

	var fields domain.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	got := fields.Fields()
	for _, f := range []string{"email", "adults", "tour_level"} {
		if _, ok := got[f]; !ok {
			t.Fatalf("missing field error for %q in %v", f, got)
		}
	}
}

func TestBookingLookupNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WillReturnError(sql.ErrNoRows)

	svc := BookingService{DB: db}
	_, err = svc.Lookup("TRB-UNKNOWN1", "ada@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestBookingLookupRecomputesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "reference_code", "tour_id", "tour_name",
		"full_name", "email", "phone", "country", "region",
		"adults", "children", "rooms", "arrival_date", "tour_level",
		"special_requests", "discount_percent", "base_total", "total",
		"status", "created_at",
	}).AddRow(
		7, "TRB-9F3A2C41", 1, "Atlas Trek",
		"Ada Traveler", "ada@example.com", "+212600000000", "Morocco", "Marrakech",
		4, 0, 2, "2026-10-01", "3-stars",
		"", 10.0, 360.0, 0.0,
		models.BookingPending, "",
	)
	mock.ExpectQuery("FROM bookings").WithArgs("TRB-9F3A2C41", "ada@example.com").WillReturnRows(rows)

	svc := BookingService{DB: db}
	booking, err := svc.Lookup("TRB-9F3A2C41", "ada@example.com")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if booking.Total != 324.00 {
		t.Fatalf("total = %v, want 324.00 (360 minus 10%%)", booking.Total)
	}
	if booking.Status != models.BookingPending {
		t.Fatalf("status = %q, want pending", booking.Status)
	}
}

func TestBookingLookupRequiresBothKeys(t *testing.T) {
	svc := BookingService{}
	if _, err := svc.Lookup("", "ada@example.com"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Lookup("TRB-12345678", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingDecideNormalizesAliases(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "reference_code", "tour_id", "tour_name",
		"full_name", "email", "phone", "country", "region",
		"adults", "children", "rooms", "arrival_date", "tour_level",
		"special_requests", "discount_percent", "base_total", "total",
		"status", "created_at",
	}).AddRow(
		7, "TRB-9F3A2C41", 1, "Atlas Trek",
		"Ada Traveler", "ada@example.com", "", "Morocco", "Marrakech",
		2, 0, 1, "2026-10-01", "3-stars",
		"", 0.0, 200.0, 200.0,
		models.BookingPending, "",
	)
	mock.ExpectQuery("FROM bookings").WithArgs(int64(7)).WillReturnRows(rows)
	mock.ExpectExec("UPDATE bookings").WithArgs(models.BookingCanceled, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{DB: db}
	booking, err := svc.Decide(7, "declined")
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if booking.Status != models.BookingCanceled {
		t.Fatalf("status = %q, want canceled", booking.Status)
	}
}

func TestBookingDecideRejectsUnknownStatus(t *testing.T) {
	svc := BookingService{}
	if _, err := svc.Decide(1, "maybe"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewReferenceCodeShape(t *testing.T) {
	code := NewReferenceCode("TRB")
	if len(code) != len("TRB-")+8 {
		t.Fatalf("unexpected code length: %q", code)
	}
	if code[:4] != "TRB-" {
		t.Fatalf("unexpected prefix: %q", code)
	}
	if code == NewReferenceCode("TRB") {
		t.Fatalf("codes must be unique per call")
	}
}
