package repositories

import (
	"database/sql"
	"fmt"

	"tourops/internal/domain/models"
)

type TestimonialRepository struct {
	DB *sql.DB
}

func (r TestimonialRepository) Insert(t models.Testimonial) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO testimonials (author_name, country, rating, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, t.AuthorName, t.Country, t.Rating, t.Message, t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TestimonialRepository) ListByStatus(status string) ([]models.Testimonial, error) {
	query := `
		SELECT id, author_name, COALESCE(country,''), rating, message, status, COALESCE(created_at,'')
		FROM testimonials`
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

	out := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.AuthorName, &t.Country, &t.Rating, &t.Message, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TestimonialRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid testimonial id")
	}
	res, err := r.DB.Exec(`UPDATE testimonials SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r TestimonialRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM testimonials WHERE id = ?`, id)
	return err
}
