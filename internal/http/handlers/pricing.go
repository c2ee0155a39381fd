package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

type quoteRequest struct {
	Category        string   `json:"category"`
	PartySize       int      `json:"partySize"`
	DiscountPercent *float64 `json:"discountPercent"`
}

type quoteResponse struct {
	Category        string   `json:"category"`
	PartySize       int      `json:"partySize"`
	Band            string   `json:"band"`
	DiscountPercent float64  `json:"discountPercent"`
	BasePrice       *float64 `json:"basePrice"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	Available       bool     `json:"available"`
}

// POST /api/tours/:id/quote
// A missing category/band price is a valid "no quote" outcome, returned with
// null prices rather than an error.
func GetTourQuote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		RespondDomainError(c, domain.ValidationError{Field: "category", Msg: "category is required"})
		return
	}
	if req.PartySize < 1 {
		RespondDomainError(c, domain.ValidationError{Field: "partySize", Msg: "party size must be at least 1"})
		return
	}

	svc := tourService(c)
	detail, err := detailFor(c, svc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// The active promotion supplies the discount unless the caller sends an
	// explicit one (e.g. the admin previewing a rate).
	discount := detail.PromoPercent
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}

	q := domain.QuotePrice(detail.Sheet, req.Category, req.PartySize, discount)
	c.JSON(http.StatusOK, quoteResponse{
		Category:        req.Category,
		PartySize:       req.PartySize,
		Band:            string(domain.BandFor(req.PartySize)),
		DiscountPercent: discount,
		BasePrice:       q.BasePrice,
		DiscountedPrice: q.DiscountedPrice,
		Available:       q.Available(),
	})
}

// GET /api/admin/tours/:id/prices
func GetTourPriceSheet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id", nil)
		return
	}
	sheet, err := (repositories.PriceRepository{DB: intconfig.DB}).GetSheet(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load price sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sheet":   sheet,
		"grouped": domain.Reshape(sheet),
	})
}

// PUT /api/admin/tours/:id/prices
// Accepts the flat "category|band" record form. Non-numeric values and
// bookkeeping fields that ride along in the payload are ignored, the same
// tolerance the read side applies.
func PutTourPriceSheet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id", nil)
		return
	}

	var raw map[string]any
	if !BindJSONOrError(c, &raw) {
		return
	}

	flat := map[string]float64{}
	for key, value := range raw {
		if f, ok := asFloat(value); ok {
			flat[key] = f
		}
	}

	svc := services.TourService{RequestID: middleware.GetRequestID(c)}
	grouped, err := svc.ReplaceSheet(id, flat)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "grouped": grouped})
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
