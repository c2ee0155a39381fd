package repositories

import (
	"database/sql"
	"fmt"

	"tourops/internal/domain/models"
)

type PromotionRepository struct {
	DB *sql.DB
}

const promotionColumns = `
	id, tour_id, COALESCE(title,''), percent,
	COALESCE(starts_at,''), COALESCE(ends_at,''), COALESCE(active,0)
`

func scanPromotion(row interface{ Scan(...any) error }) (models.Promotion, error) {
	var p models.Promotion
	var active int
	err := row.Scan(&p.ID, &p.TourID, &p.Title, &p.Percent, &p.StartsAt, &p.EndsAt, &active)
	p.Active = active != 0
	return p, err
}

func (r PromotionRepository) List() ([]models.Promotion, error) {
	rows, err := r.DB.Query(`SELECT ` + promotionColumns + ` FROM promotions ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PromotionRepository) Insert(p models.Promotion) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO promotions (tour_id, title, percent, starts_at, ends_at, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.TourID, p.Title, p.Percent, p.StartsAt, p.EndsAt, p.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PromotionRepository) Update(p models.Promotion) error {
	if p.ID <= 0 {
		return fmt.Errorf("invalid promotion id")
	}
	_, err := r.DB.Exec(`
		UPDATE promotions
		SET tour_id = ?, title = ?, percent = ?, starts_at = ?, ends_at = ?, active = ?
		WHERE id = ?
	`, p.TourID, p.Title, p.Percent, p.StartsAt, p.EndsAt, p.Active, p.ID)
	return err
}

func (r PromotionRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM promotions WHERE id = ?`, id)
	return err
}

// ActivePercent returns the discount a tour currently carries, or 0 when no
// promotion window covers today. With overlapping promotions the largest
// discount wins.
func (r PromotionRepository) ActivePercent(tourID int64) (float64, error) {
	var percent float64
	err := r.DB.QueryRow(`
		SELECT COALESCE(MAX(percent), 0)
		FROM promotions
		WHERE tour_id = ?
		  AND COALESCE(active,0) = 1
		  AND (starts_at IS NULL OR starts_at = '' OR starts_at <= CURDATE())
		  AND (ends_at IS NULL OR ends_at = '' OR ends_at >= CURDATE())
	`, tourID).Scan(&percent)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return percent, nil
}
