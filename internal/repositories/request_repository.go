package repositories

import (
	"database/sql"
	"fmt"

	"tourops/internal/domain/models"
)

type RequestRepository struct {
	DB *sql.DB
}

const requestColumns = `
	id, reference_code, full_name, email, COALESCE(phone,''), COALESCE(country,''),
	duration_days, adults, children, COALESCE(budget,''), COALESCE(tour_level,''),
	COALESCE(destinations,''), COALESCE(notes,''), status, COALESCE(created_at,'')
`

func scanRequest(row interface{ Scan(...any) error }) (models.TourRequest, error) {
	var q models.TourRequest
	err := row.Scan(
		&q.ID, &q.ReferenceCode, &q.FullName, &q.Email, &q.Phone, &q.Country,
		&q.DurationDays, &q.Adults, &q.Children, &q.Budget, &q.TourLevel,
		&q.Destinations, &q.Notes, &q.Status, &q.CreatedAt,
	)
	return q, err
}

func (r RequestRepository) Insert(q models.TourRequest) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO tour_requests
			(reference_code, full_name, email, phone, country, duration_days,
			 adults, children, budget, tour_level, destinations, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		q.ReferenceCode, q.FullName, q.Email, q.Phone, q.Country, q.DurationDays,
		q.Adults, q.Children, q.Budget, q.TourLevel, q.Destinations, q.Notes, q.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RequestRepository) List(status string) ([]models.TourRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tour_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TourRequest{}
	for rows.Next() {
		q, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r RequestRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid request id")
	}
	res, err := r.DB.Exec(`UPDATE tour_requests SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
