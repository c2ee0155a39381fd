package handlers

import (
	"net/http"
	"strconv"

	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

type tourRequestPayload struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	DurationDays int    `json:"durationDays"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Budget       string `json:"budget"`
	TourLevel    string `json:"tourLevel"`
	Destinations string `json:"destinations"`
	Notes        string `json:"notes"`
}

type tourRequestDTO struct {
	ID            int64  `json:"id"`
	ReferenceCode string `json:"referenceCode"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	DurationDays  int    `json:"durationDays"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Budget        string `json:"budget"`
	TourLevel     string `json:"tourLevel"`
	Destinations  string `json:"destinations"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

func toRequestDTO(q models.TourRequest) tourRequestDTO {
	return tourRequestDTO{
		ID:            q.ID,
		ReferenceCode: q.ReferenceCode,
		FullName:      q.FullName,
		Email:         q.Email,
		Phone:         q.Phone,
		Country:       q.Country,
		DurationDays:  q.DurationDays,
		Adults:        q.Adults,
		Children:      q.Children,
		Budget:        q.Budget,
		TourLevel:     q.TourLevel,
		Destinations:  q.Destinations,
		Notes:         q.Notes,
		Status:        q.Status,
		CreatedAt:     q.CreatedAt,
	}
}

func requestService(c *gin.Context) services.RequestService {
	return services.RequestService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/tour-requests
func CreateTourRequest(c *gin.Context) {
	var req tourRequestPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	saved, err := requestService(c).Submit(models.TourRequest{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Country:      req.Country,
		DurationDays: req.DurationDays,
		Adults:       req.Adults,
		Children:     req.Children,
		Budget:       req.Budget,
		TourLevel:    req.TourLevel,
		Destinations: req.Destinations,
		Notes:        req.Notes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"referenceCode": saved.ReferenceCode,
		"status":        saved.Status,
		"message":       "request received, our team will get in touch",
	})
}

// GET /api/admin/tour-requests
func ListTourRequests(c *gin.Context) {
	requests, err := requestService(c).List(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]tourRequestDTO, 0, len(requests))
	for _, q := range requests {
		out = append(out, toRequestDTO(q))
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

type requestStatusPayload struct {
	Status string `json:"status"`
}

// PUT /api/admin/tour-requests/:id/status
func UpdateTourRequestStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid request id", nil)
		return
	}
	var req requestStatusPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := requestService(c).UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "status": models.NormalizeRequestStatus(req.Status)})
}
