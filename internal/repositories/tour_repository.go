package repositories

import (
	"database/sql"
	"fmt"

	"tourops/internal/db"
	"tourops/internal/domain/models"
)

type TourRepository struct {
	DB *sql.DB
}

const tourColumns = `
	id, slug, name, COALESCE(summary,''), COALESCE(description,''),
	COALESCE(destination,''), duration_days, COALESCE(cover_image,''),
	COALESCE(featured,0), COALESCE(created_at,''), COALESCE(updated_at,'')
`

func scanTour(row interface{ Scan(...any) error }) (models.Tour, error) {
	var t models.Tour
	var featured int
	err := row.Scan(
		&t.ID, &t.Slug, &t.Name, &t.Summary, &t.Description,
		&t.Destination, &t.DurationDays, &t.CoverImage,
		&featured, &t.CreatedAt, &t.UpdatedAt,
	)
	t.Featured = featured != 0
	return t, err
}

func (r TourRepository) List(featuredOnly bool) ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours`
	if featuredOnly {
		query += ` WHERE COALESCE(featured,0) = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TourRepository) GetByID(id int64) (models.Tour, error) {
	if id <= 0 {
		return models.Tour{}, fmt.Errorf("invalid tour id")
	}
	return scanTour(r.DB.QueryRow(`SELECT `+tourColumns+` FROM tours WHERE id = ? LIMIT 1`, id))
}

func (r TourRepository) GetBySlug(slug string) (models.Tour, error) {
	return scanTour(r.DB.QueryRow(`SELECT `+tourColumns+` FROM tours WHERE slug = ? LIMIT 1`, slug))
}

func (r TourRepository) Insert(t models.Tour) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO tours (slug, name, summary, description, destination, duration_days, cover_image, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, t.Slug, t.Name, db.NullIfEmpty(t.Summary), db.NullIfEmpty(t.Description),
		db.NullIfEmpty(t.Destination), t.DurationDays, db.NullIfEmpty(t.CoverImage), t.Featured)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TourRepository) Update(id int64, up models.TourUpdate) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if up.Name != nil {
		add("name", *up.Name)
	}
	if up.Summary != nil {
		add("summary", *up.Summary)
	}
	if up.Description != nil {
		add("description", *up.Description)
	}
	if up.Destination != nil {
		add("destination", *up.Destination)
	}
	if up.DurationDays != nil {
		add("duration_days", *up.DurationDays)
	}
	if up.CoverImage != nil {
		add("cover_image", *up.CoverImage)
	}
	if up.Featured != nil {
		add("featured", *up.Featured)
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE tours SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += ", updated_at = NOW() WHERE id = ?"
	args = append(args, id)
	_, err := r.DB.Exec(query, args...)
	return err
}

func (r TourRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM tours WHERE id = ?`, id)
	return err
}

func (r TourRepository) ListDays(tourID int64) ([]models.TourDay, error) {
	rows, err := r.DB.Query(`
		SELECT id, tour_id, day_number, COALESCE(title,''), COALESCE(description,'')
		FROM tour_days
		WHERE tour_id = ?
		ORDER BY day_number ASC
	`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TourDay{}
	for rows.Next() {
		var d models.TourDay
		if err := rows.Scan(&d.ID, &d.TourID, &d.DayNumber, &d.Title, &d.Description); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ReplaceDays rewrites the full itinerary of a tour in one transaction.
func (r TourRepository) ReplaceDays(tourID int64, days []models.TourDay) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tour_days WHERE tour_id = ?`, tourID); err != nil {
		return err
	}
	for _, d := range days {
		if _, err := tx.Exec(`
			INSERT INTO tour_days (tour_id, day_number, title, description)
			VALUES (?, ?, ?, ?)
		`, tourID, d.DayNumber, d.Title, d.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}
