package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"tourops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference_code", "tour_id", "tour_name",
		"full_name", "email", "phone", "country", "region",
		"adults", "children", "rooms", "arrival_date", "tour_level",
		"special_requests", "discount_percent", "base_total", "total",
		"status", "created_at",
	})
}

func TestBookingInsertReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := BookingRepository{DB: db}
	id, err := repo.Insert(models.Booking{
		ReferenceCode: "TRB-9F3A2C41",
		TourID:        1,
		FullName:      "Ada Traveler",
		Email:         "ada@example.com",
		Adults:        2,
		Rooms:         1,
		ArrivalDate:   "2026-10-01",
		TourLevel:     "3-stars",
		Status:        models.BookingPending,
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetByReferenceMatchesBothKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := bookingRows().AddRow(
		7, "TRB-9F3A2C41", 1, "Atlas Trek",
		"Ada Traveler", "ada@example.com", "", "Morocco", "Marrakech",
		2, 0, 1, "2026-10-01", "3-stars",
		"", 0.0, 200.0, 200.0,
		models.BookingPending, "",
	)
	mock.ExpectQuery("FROM bookings").
		WithArgs("TRB-9F3A2C41", "Ada@Example.com").
		WillReturnRows(rows)

	repo := BookingRepository{DB: db}
	b, err := repo.GetByReference("  TRB-9F3A2C41 ", "Ada@Example.com")
	if err != nil {
		t.Fatalf("GetByReference returned error: %v", err)
	}
	if b.ID != 7 || b.TourName != "Atlas Trek" {
		t.Fatalf("unexpected booking %+v", b)
	}
}

func TestBookingGetByReferenceMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WillReturnRows(bookingRows())

	repo := BookingRepository{DB: db}
	if _, err := repo.GetByReference("TRB-NOPE0000", "ada@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestBookingListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("COUNT").
		WithArgs(models.BookingPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM bookings").
		WithArgs(models.BookingPending, 20, 0).
		WillReturnRows(bookingRows().AddRow(
			7, "TRB-9F3A2C41", 1, "Atlas Trek",
			"Ada Traveler", "ada@example.com", "", "Morocco", "Marrakech",
			2, 0, 1, "2026-10-01", "3-stars",
			"", 0.0, 200.0, 200.0,
			models.BookingPending, "",
		))

	repo := BookingRepository{DB: db}
	bookings, total, err := repo.List(models.BookingPending, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || len(bookings) != 1 {
		t.Fatalf("total=%d len=%d, want 1/1", total, len(bookings))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingUpdateStatusZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(models.BookingApproved, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	if err := repo.UpdateStatus(99, models.BookingApproved); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
