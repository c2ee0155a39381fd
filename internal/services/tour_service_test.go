package services

import (
	"testing"

	"tourops/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSheetRowsFromFlatDropsBookkeepingKeys(t *testing.T) {
	flat := map[string]float64{
		"3-stars|2":   100,
		"3-stars|3-4": 90,
		"3-stars|5<n": 80,
		"id":          12,
		"tour_id":     3,
		"created_at":  0,
		"updated_at":  0,
	}

	rows, err := SheetRowsFromFlat(3, flat)
	if err != nil {
		t.Fatalf("SheetRowsFromFlat returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}
	for _, r := range rows {
		if r.TourID != 3 || r.Category != "3-stars" {
			t.Fatalf("unexpected row %+v", r)
		}
	}
}

func TestSheetRowsFromFlatRejectsUnknownBand(t *testing.T) {
	_, err := SheetRowsFromFlat(3, map[string]float64{"3-stars|7+": 50})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSheetRowsFromFlatRejectsNegativePrice(t *testing.T) {
	_, err := SheetRowsFromFlat(3, map[string]float64{"3-stars|2": -1})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTourDetailAssemblesPriceGroupsAndPromo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tours").WithArgs(int64(1)).WillReturnRows(tourRows())
	mock.ExpectQuery("FROM tour_days").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tour_id", "day_number", "title", "description"}).
			AddRow(1, 1, 1, "Arrival", "Transfer and briefing").
			AddRow(2, 1, 2, "Summit day", ""))
	mock.ExpectQuery("FROM tour_prices").WithArgs(int64(1)).WillReturnRows(priceRows())
	mock.ExpectQuery("FROM promotions").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"percent"}).AddRow(15.0))

	svc := TourService{DB: db}
	detail, err := svc.DetailByID(1)
	if err != nil {
		t.Fatalf("DetailByID returned error: %v", err)
	}

	if detail.Tour.Slug != "atlas-trek" {
		t.Fatalf("tour slug = %q", detail.Tour.Slug)
	}
	if len(detail.Days) != 2 {
		t.Fatalf("expected 2 itinerary days, got %d", len(detail.Days))
	}
	if detail.PromoPercent != 15 {
		t.Fatalf("promo percent = %v, want 15", detail.PromoPercent)
	}
	if len(detail.PriceGroups) != 1 || detail.PriceGroups[0].Category != "3-stars" {
		t.Fatalf("unexpected price groups %+v", detail.PriceGroups)
	}
	if len(detail.PriceGroups[0].Entries) != 3 {
		t.Fatalf("expected 3 band entries, got %+v", detail.PriceGroups[0].Entries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTourDetailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tours").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := TourService{DB: db}
	if _, err := svc.DetailByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
