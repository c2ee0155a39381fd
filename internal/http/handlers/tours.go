package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

// =======================
// DTO
// =======================

type TourDTO struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Summary      string `json:"summary"`
	Description  string `json:"description,omitempty"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"durationDays"`
	CoverImage   string `json:"coverImage"`
	Featured     bool   `json:"featured"`
}

type TourDayDTO struct {
	DayNumber   int    `json:"dayNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TourDetailDTO struct {
	Tour         TourDTO                 `json:"tour"`
	Days         []TourDayDTO            `json:"days"`
	PriceTable   []domain.CategoryPrices `json:"priceTable"`
	PromoPercent float64                 `json:"promoPercent"`
}

func tourDTO(t models.Tour) TourDTO {
	return TourDTO{
		ID:           t.ID,
		Slug:         t.Slug,
		Name:         t.Name,
		Summary:      t.Summary,
		Description:  t.Description,
		Destination:  t.Destination,
		DurationDays: t.DurationDays,
		CoverImage:   t.CoverImage,
		Featured:     t.Featured,
	}
}

func tourService(c *gin.Context) services.TourService {
	return services.TourService{RequestID: middleware.GetRequestID(c)}
}

// detailFor accepts a numeric id or a slug in the same path segment.
func detailFor(c *gin.Context, svc services.TourService) (services.TourDetail, error) {
	param := strings.TrimSpace(c.Param("id"))
	if id, err := strconv.ParseInt(param, 10, 64); err == nil && id > 0 {
		return svc.DetailByID(id)
	}
	return svc.DetailBySlug(param)
}

// GET /api/tours
func ListTours(c *gin.Context) {
	featured := c.Query("featured") == "true" || c.Query("featured") == "1"
	repo := repositories.TourRepository{DB: intconfig.DB}
	tours, err := repo.List(featured)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list tours", err)
		return
	}

	out := make([]TourDTO, 0, len(tours))
	for _, t := range tours {
		dto := tourDTO(t)
		dto.Description = "" // list view stays light
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, gin.H{"tours": out})
}

// GET /api/tours/:id  (id or slug)
func GetTourDetail(c *gin.Context) {
	detail, err := detailFor(c, tourService(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	days := make([]TourDayDTO, 0, len(detail.Days))
	for _, d := range detail.Days {
		days = append(days, TourDayDTO{DayNumber: d.DayNumber, Title: d.Title, Description: d.Description})
	}

	c.JSON(http.StatusOK, TourDetailDTO{
		Tour:         tourDTO(detail.Tour),
		Days:         days,
		PriceTable:   detail.PriceGroups,
		PromoPercent: detail.PromoPercent,
	})
}

type tourPayload struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Summary      string `json:"summary"`
	Description  string `json:"description"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"durationDays"`
	CoverImage   string `json:"coverImage"`
	Featured     bool   `json:"featured"`
}

// POST /api/admin/tours
func CreateTour(c *gin.Context) {
	var req tourPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	tour, err := tourService(c).Create(models.Tour{
		Slug:         req.Slug,
		Name:         req.Name,
		Summary:      req.Summary,
		Description:  req.Description,
		Destination:  req.Destination,
		DurationDays: req.DurationDays,
		CoverImage:   req.CoverImage,
		Featured:     req.Featured,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tour": tourDTO(tour)})
}

type tourUpdatePayload struct {
	Name         *string `json:"name"`
	Summary      *string `json:"summary"`
	Description  *string `json:"description"`
	Destination  *string `json:"destination"`
	DurationDays *int    `json:"durationDays"`
	CoverImage   *string `json:"coverImage"`
	Featured     *bool   `json:"featured"`
}

// PUT /api/admin/tours/:id
func UpdateTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id", nil)
		return
	}
	var req tourUpdatePayload
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.TourRepository{DB: intconfig.DB}
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondDomainError(c, domain.NotFoundError{Resource: "tour", Err: err})
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load tour", err)
		return
	}
	if err := repo.Update(id, models.TourUpdate{
		Name:         req.Name,
		Summary:      req.Summary,
		Description:  req.Description,
		Destination:  req.Destination,
		DurationDays: req.DurationDays,
		CoverImage:   req.CoverImage,
		Featured:     req.Featured,
	}); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update tour", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /api/admin/tours/:id
func DeleteTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id", nil)
		return
	}
	if err := (repositories.TourRepository{DB: intconfig.DB}).Delete(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete tour", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

type tourDaysPayload struct {
	Days []TourDayDTO `json:"days"`
}

// PUT /api/admin/tours/:id/days
func PutTourDays(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id", nil)
		return
	}
	var req tourDaysPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	for i, d := range req.Days {
		if d.DayNumber < 1 {
			RespondError(c, http.StatusBadRequest, "day numbers start at 1", nil)
			return
		}
		req.Days[i].Title = strings.TrimSpace(d.Title)
	}

	days := make([]models.TourDay, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.TourDay{TourID: id, DayNumber: d.DayNumber, Title: d.Title, Description: d.Description})
	}
	if err := (repositories.TourRepository{DB: intconfig.DB}).ReplaceDays(id, days); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store itinerary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "days": len(days)})
}
