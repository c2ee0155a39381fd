package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"tourops/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `
	b.id, b.reference_code, b.tour_id, COALESCE(t.name,''),
	b.full_name, b.email, COALESCE(b.phone,''), COALESCE(b.country,''), COALESCE(b.region,''),
	b.adults, b.children, b.rooms, b.arrival_date, b.tour_level,
	COALESCE(b.special_requests,''), COALESCE(b.discount_percent,0),
	COALESCE(b.base_total,0), COALESCE(b.total,0),
	b.status, COALESCE(b.created_at,'')
`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ReferenceCode, &b.TourID, &b.TourName,
		&b.FullName, &b.Email, &b.Phone, &b.Country, &b.Region,
		&b.Adults, &b.Children, &b.Rooms, &b.ArrivalDate, &b.TourLevel,
		&b.SpecialRequests, &b.DiscountPercent,
		&b.BaseTotal, &b.Total,
		&b.Status, &b.CreatedAt,
	)
	return b, err
}

func (r BookingRepository) Insert(b models.Booking) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bookings
			(reference_code, tour_id, full_name, email, phone, country, region,
			 adults, children, rooms, arrival_date, tour_level, special_requests,
			 discount_percent, base_total, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		b.ReferenceCode, b.TourID, b.FullName, b.Email, b.Phone, b.Country, b.Region,
		b.Adults, b.Children, b.Rooms, b.ArrivalDate, b.TourLevel, b.SpecialRequests,
		b.DiscountPercent, b.BaseTotal, b.Total, b.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("invalid booking id")
	}
	row := r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN tours t ON t.id = b.tour_id
		WHERE b.id = ?
		LIMIT 1
	`, id)
	return scanBooking(row)
}

// GetByReference is the lookup path: reference code and email must both
// match. sql.ErrNoRows here is an expected outcome, not a fault.
func (r BookingRepository) GetByReference(referenceCode, email string) (models.Booking, error) {
	row := r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN tours t ON t.id = b.tour_id
		WHERE b.reference_code = ? AND LOWER(b.email) = LOWER(?)
		LIMIT 1
	`, strings.TrimSpace(referenceCode), strings.TrimSpace(email))
	return scanBooking(row)
}

func (r BookingRepository) List(status string, page, pageSize int) ([]models.Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := ""
	args := []any{}
	if status != "" {
		where = " WHERE b.status = ?"
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN tours t ON t.id = b.tour_id` + where + `
		ORDER BY b.id DESC
		LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r BookingRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	res, err := r.DB.Exec(`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
