package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
)

type testimonialPayload struct {
	AuthorName string `json:"authorName"`
	Country    string `json:"country"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
}

type testimonialDTO struct {
	ID         int64  `json:"id"`
	AuthorName string `json:"authorName"`
	Country    string `json:"country"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// POST /api/testimonials
// Submissions wait for moderation before they show up publicly.
func CreateTestimonial(c *gin.Context) {
	var req testimonialPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.Message = strings.TrimSpace(req.Message)
	if req.AuthorName == "" || req.Message == "" {
		RespondError(c, http.StatusBadRequest, "name and message are required", nil)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		RespondError(c, http.StatusBadRequest, "rating must be between 1 and 5", nil)
		return
	}

	repo := repositories.TestimonialRepository{DB: intconfig.DB}
	id, err := repo.Insert(models.Testimonial{
		AuthorName: req.AuthorName,
		Country:    strings.TrimSpace(req.Country),
		Rating:     req.Rating,
		Message:    req.Message,
		Status:     models.TestimonialPending,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store testimonial", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": models.TestimonialPending})
}

// GET /api/testimonials returns approved entries only.
func ListTestimonials(c *gin.Context) {
	repo := repositories.TestimonialRepository{DB: intconfig.DB}
	items, err := repo.ListByStatus(models.TestimonialApproved)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list testimonials", err)
		return
	}
	out := make([]testimonialDTO, 0, len(items))
	for _, t := range items {
		out = append(out, testimonialDTO{
			ID: t.ID, AuthorName: t.AuthorName, Country: t.Country,
			Rating: t.Rating, Message: t.Message, CreatedAt: t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": out})
}

// GET /api/admin/testimonials returns all entries, optional ?status= filter.
func ListTestimonialsAdmin(c *gin.Context) {
	repo := repositories.TestimonialRepository{DB: intconfig.DB}
	items, err := repo.ListByStatus(strings.TrimSpace(c.Query("status")))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list testimonials", err)
		return
	}
	out := make([]testimonialDTO, 0, len(items))
	for _, t := range items {
		out = append(out, testimonialDTO{
			ID: t.ID, AuthorName: t.AuthorName, Country: t.Country,
			Rating: t.Rating, Message: t.Message, Status: t.Status, CreatedAt: t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": out})
}

// PUT /api/admin/testimonials/:id/approve
func ApproveTestimonial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid testimonial id", nil)
		return
	}
	repo := repositories.TestimonialRepository{DB: intconfig.DB}
	if err := repo.UpdateStatus(id, models.TestimonialApproved); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to approve testimonial", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "status": models.TestimonialApproved})
}

// DELETE /api/admin/testimonials/:id
func DeleteTestimonial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid testimonial id", nil)
		return
	}
	repo := repositories.TestimonialRepository{DB: intconfig.DB}
	if err := repo.Delete(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete testimonial", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
