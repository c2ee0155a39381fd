package repositories

import (
	"database/sql"
	"fmt"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

// PriceRepository stores sheets as typed (category, band) rows. The flat
// "category|band" composite key is rebuilt only at the API boundary.
type PriceRepository struct {
	DB *sql.DB
}

func (r PriceRepository) ListRows(tourID int64) ([]models.PriceRow, error) {
	if tourID <= 0 {
		return nil, fmt.Errorf("invalid tour id")
	}
	rows, err := r.DB.Query(`
		SELECT tour_id, category, band, price
		FROM tour_prices
		WHERE tour_id = ?
		ORDER BY category ASC, band ASC
	`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PriceRow{}
	for rows.Next() {
		var p models.PriceRow
		var band string
		if err := rows.Scan(&p.TourID, &p.Category, &band, &p.Price); err != nil {
			return nil, err
		}
		p.Band = domain.Band(band)
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetSheet loads a tour's prices in the flat wire form the calculator and
// the public API consume.
func (r PriceRepository) GetSheet(tourID int64) (domain.PriceSheet, error) {
	priceRows, err := r.ListRows(tourID)
	if err != nil {
		return nil, err
	}
	sheet := domain.PriceSheet{}
	for _, p := range priceRows {
		sheet[domain.SheetKey(p.Category, p.Band)] = p.Price
	}
	return sheet, nil
}

// ReplaceSheet rewrites a tour's full price table in one transaction.
func (r PriceRepository) ReplaceSheet(tourID int64, priceRows []models.PriceRow) error {
	if tourID <= 0 {
		return fmt.Errorf("invalid tour id")
	}
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tour_prices WHERE tour_id = ?`, tourID); err != nil {
		return err
	}
	for _, p := range priceRows {
		if _, err := tx.Exec(`
			INSERT INTO tour_prices (tour_id, category, band, price)
			VALUES (?, ?, ?, ?)
		`, tourID, p.Category, string(p.Band), p.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}
