package handlers

import (
	"net/http"
	"strconv"

	intconfig "tourops/internal/config"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
)

type PromotionDTO struct {
	ID       int64   `json:"id"`
	TourID   int64   `json:"tourId"`
	Title    string  `json:"title"`
	Percent  float64 `json:"percent"`
	StartsAt string  `json:"startsAt"`
	EndsAt   string  `json:"endsAt"`
	Active   bool    `json:"active"`
}

func toPromotionDTO(p models.Promotion) PromotionDTO {
	return PromotionDTO{
		ID: p.ID, TourID: p.TourID, Title: p.Title, Percent: p.Percent,
		StartsAt: p.StartsAt, EndsAt: p.EndsAt, Active: p.Active,
	}
}

func promotionFromDTO(req PromotionDTO) models.Promotion {
	return models.Promotion{
		ID: req.ID, TourID: req.TourID, Title: req.Title, Percent: req.Percent,
		StartsAt: req.StartsAt, EndsAt: req.EndsAt, Active: req.Active,
	}
}

func validPromotion(req PromotionDTO) (string, bool) {
	if req.TourID <= 0 {
		return "tourId is required", false
	}
	// A promotion is a discount percent; out-of-range values would produce
	// nonsense totals downstream.
	if req.Percent <= 0 || req.Percent > 100 {
		return "percent must be in (0,100]", false
	}
	return "", true
}

// GET /api/admin/promotions
func ListPromotions(c *gin.Context) {
	repo := repositories.PromotionRepository{DB: intconfig.DB}
	items, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list promotions", err)
		return
	}
	out := make([]PromotionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, toPromotionDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{"promotions": out})
}

// POST /api/admin/promotions
func CreatePromotion(c *gin.Context) {
	var req PromotionDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := validPromotion(req); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.PromotionRepository{DB: intconfig.DB}
	id, err := repo.Insert(promotionFromDTO(req))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store promotion", err)
		return
	}
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"promotion": req})
}

// PUT /api/admin/promotions/:id
func UpdatePromotion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid promotion id", nil)
		return
	}
	var req PromotionDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := validPromotion(req); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	req.ID = id

	repo := repositories.PromotionRepository{DB: intconfig.DB}
	if err := repo.Update(promotionFromDTO(req)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update promotion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /api/admin/promotions/:id
func DeletePromotion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid promotion id", nil)
		return
	}
	repo := repositories.PromotionRepository{DB: intconfig.DB}
	if err := repo.Delete(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete promotion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
