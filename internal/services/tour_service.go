package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// TourService assembles catalog views and guards price-sheet writes.
type TourService struct {
	TourRepo  repositories.TourRepository
	PriceRepo repositories.PriceRepository
	PromoRepo repositories.PromotionRepository
	DB        *sql.DB
	RequestID string
}

func (s TourService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TourService) tours() repositories.TourRepository {
	if s.TourRepo.DB != nil {
		return s.TourRepo
	}
	return repositories.TourRepository{DB: s.db()}
}

func (s TourService) prices() repositories.PriceRepository {
	if s.PriceRepo.DB != nil {
		return s.PriceRepo
	}
	return repositories.PriceRepository{DB: s.db()}
}

func (s TourService) promos() repositories.PromotionRepository {
	if s.PromoRepo.DB != nil {
		return s.PromoRepo
	}
	return repositories.PromotionRepository{DB: s.db()}
}

// TourDetail is everything the tour page renders: itinerary, the grouped
// price table, and the discount currently running.
type TourDetail struct {
	Tour         models.Tour
	Days         []models.TourDay
	PriceGroups  []domain.CategoryPrices
	Sheet        domain.PriceSheet
	PromoPercent float64
}

func (s TourService) DetailByID(id int64) (TourDetail, error) {
	tour, err := s.tours().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TourDetail{}, domain.NotFoundError{Resource: "tour", Err: err}
		}
		return TourDetail{}, domain.InternalError{Msg: "failed to load tour", Err: err}
	}
	return s.assemble(tour)
}

func (s TourService) DetailBySlug(slug string) (TourDetail, error) {
	tour, err := s.tours().GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TourDetail{}, domain.NotFoundError{Resource: "tour", Err: err}
		}
		return TourDetail{}, domain.InternalError{Msg: "failed to load tour", Err: err}
	}
	return s.assemble(tour)
}

func (s TourService) assemble(tour models.Tour) (TourDetail, error) {
	days, err := s.tours().ListDays(tour.ID)
	if err != nil {
		return TourDetail{}, domain.InternalError{Msg: "failed to load itinerary", Err: err}
	}
	sheet, err := s.prices().GetSheet(tour.ID)
	if err != nil {
		return TourDetail{}, domain.InternalError{Msg: "failed to load price sheet", Err: err}
	}
	percent, err := s.promos().ActivePercent(tour.ID)
	if err != nil {
		return TourDetail{}, domain.InternalError{Msg: "failed to resolve promotion", Err: err}
	}

	return TourDetail{
		Tour:         tour,
		Days:         days,
		PriceGroups:  domain.Reshape(sheet),
		Sheet:        sheet,
		PromoPercent: percent,
	}, nil
}

func (s TourService) Create(tour models.Tour) (models.Tour, error) {
	tour.Name = utils.NormalizeSpace(tour.Name)
	if tour.Name == "" {
		return models.Tour{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if tour.DurationDays < 1 {
		return models.Tour{}, domain.ValidationError{Field: "duration_days", Msg: "duration must be at least 1 day"}
	}
	if strings.TrimSpace(tour.Slug) == "" {
		tour.Slug = utils.Slugify(tour.Name)
	}

	if _, err := s.tours().GetBySlug(tour.Slug); err == nil {
		return models.Tour{}, domain.ConflictError{Resource: "tour", Msg: "slug already in use"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Tour{}, domain.InternalError{Msg: "failed to check slug", Err: err}
	}

	id, err := s.tours().Insert(tour)
	if err != nil {
		return models.Tour{}, domain.InternalError{Msg: "failed to store tour", Err: err}
	}
	tour.ID = id

	utils.LogEvent(s.RequestID, "tour", "create", fmt.Sprintf("id=%d slug=%s", id, tour.Slug))
	return tour, nil
}

// SheetRowsFromFlat converts the flat admin payload into typed rows.
// Bookkeeping keys are tolerated and dropped, matching read-side behavior,
// but unknown bands and negative prices are rejected: tolerance is for
// upstream noise, not for storing broken data.
func SheetRowsFromFlat(tourID int64, flat map[string]float64) ([]models.PriceRow, error) {
	rows := []models.PriceRow{}
	for _, group := range domain.Reshape(domain.PriceSheet(flat)) {
		for _, entry := range group.Entries {
			switch entry.Band {
			case domain.BandUpTo2, domain.Band3To4, domain.Band5Plus:
			default:
				return nil, domain.ValidationError{Field: "band", Msg: fmt.Sprintf("unknown band %q", entry.Band)}
			}
			if entry.Price < 0 {
				return nil, domain.ValidationError{
					Field: domain.SheetKey(group.Category, entry.Band),
					Msg:   "price cannot be negative",
				}
			}
			rows = append(rows, models.PriceRow{
				TourID:   tourID,
				Category: group.Category,
				Band:     entry.Band,
				Price:    entry.Price,
			})
		}
	}
	return rows, nil
}

// ReplaceSheet validates and rewrites a tour's price table.
func (s TourService) ReplaceSheet(tourID int64, flat map[string]float64) ([]domain.CategoryPrices, error) {
	if _, err := s.tours().GetByID(tourID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "tour", Err: err}
		}
		return nil, domain.InternalError{Msg: "failed to load tour", Err: err}
	}

	rows, err := SheetRowsFromFlat(tourID, flat)
	if err != nil {
		return nil, err
	}
	if err := s.prices().ReplaceSheet(tourID, rows); err != nil {
		return nil, domain.InternalError{Msg: "failed to store price sheet", Err: err}
	}

	sheet, err := s.prices().GetSheet(tourID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to reload price sheet", Err: err}
	}

	utils.LogEvent(s.RequestID, "tour", "replace_sheet", fmt.Sprintf("tour=%d rows=%d", tourID, len(rows)))
	return domain.Reshape(sheet), nil
}
