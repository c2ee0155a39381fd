package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "tourops/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newBookingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/bookings", CreateBooking)
	r.GET("/api/bookings/lookup", LookupBooking)
	return r
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() {
		intconfig.DB = nil
		db.Close()
	})
	intconfig.DB = db
	return mock
}

func expectTourAndSheet(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM tours").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slug", "name", "summary", "description",
			"destination", "duration_days", "cover_image",
			"featured", "created_at", "updated_at",
		}).AddRow(1, "atlas-trek", "Atlas Trek", "", "", "Morocco", 5, "", 0, "", ""))
	mock.ExpectQuery("FROM tour_prices").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"tour_id", "category", "band", "price"}).
			AddRow(1, "3-stars", "2", 100.0).
			AddRow(1, "3-stars", "3-4", 90.0).
			AddRow(1, "3-stars", "5<n", 80.0))
}

func TestCreateBookingReturnsReferenceAndTotals(t *testing.T) {
	mock := withMockDB(t)
	expectTourAndSheet(mock)
	mock.ExpectQuery("FROM promotions").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"percent"}).AddRow(0.0))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))

	r := newBookingRouter()
	body := `{
		"tourId": 1,
		"fullName": "Ada Traveler",
		"email": "ada@example.com",
		"phone": "+212600000000",
		"country": "Morocco",
		"region": "Marrakech",
		"adults": 2,
		"children": 0,
		"rooms": 1,
		"arrivalDate": "2026-10-01",
		"tourLevel": "3-stars"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ReferenceCode string  `json:"referenceCode"`
		Status        string  `json:"status"`
		BaseTotal     float64 `json:"baseTotal"`
		Total         float64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !strings.HasPrefix(resp.ReferenceCode, "TRB-") {
		t.Fatalf("referenceCode = %q", resp.ReferenceCode)
	}
	if resp.Status != "pending" {
		t.Fatalf("status = %q, want pending", resp.Status)
	}
	if resp.BaseTotal != 200 || resp.Total != 200 {
		t.Fatalf("totals = %v/%v, want 200/200", resp.BaseTotal, resp.Total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingValidationFailureMapsFields(t *testing.T) {
	mock := withMockDB(t)
	expectTourAndSheet(mock)
	// validation fails: no promotion lookup, no insert

	r := newBookingRouter()
	body := `{
		"tourId": 1,
		"fullName": "Ada Traveler",
		"email": "not-an-email",
		"country": "Morocco",
		"region": "Marrakech",
		"adults": 0,
		"rooms": 1,
		"arrivalDate": "2026-10-01",
		"tourLevel": "3-stars"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Code != "validation_error" {
		t.Fatalf("code = %q", resp.Code)
	}
	for _, f := range []string{"email", "phone", "adults"} {
		if _, ok := resp.Details[f]; !ok {
			t.Fatalf("missing detail for %q in %v", f, resp.Details)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookupBookingMissIsNotFound(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("FROM bookings").WillReturnError(sql.ErrNoRows)

	r := newBookingRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/lookup?reference_code=TRB-NOPE0000&email=ada%40example.com", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLookupBookingPendingHidesDetails(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("FROM bookings").
		WithArgs("TRB-9F3A2C41", "ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
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
			"pending", "",
		))

	r := newBookingRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/lookup?reference_code=TRB-9F3A2C41&email=ada%40example.com", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("status = %v", resp["status"])
	}
	if _, ok := resp["booking"]; ok {
		t.Fatalf("pending lookup must not expose booking details: %v", resp)
	}
}
