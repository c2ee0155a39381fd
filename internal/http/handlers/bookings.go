package handlers

import (
	"net/http"
	"strconv"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

type bookingPayload struct {
	TourID          int64  `json:"tourId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	Region          string `json:"region"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	Rooms           int    `json:"rooms"`
	ArrivalDate     string `json:"arrivalDate"`
	TourLevel       string `json:"tourLevel"`
	SpecialRequests string `json:"specialRequests"`
}

type bookingDTO struct {
	ReferenceCode   string  `json:"referenceCode"`
	TourID          int64   `json:"tourId"`
	TourName        string  `json:"tourName,omitempty"`
	FullName        string  `json:"fullName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Country         string  `json:"country"`
	Region          string  `json:"region"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	Rooms           int     `json:"rooms"`
	ArrivalDate     string  `json:"arrivalDate"`
	TourLevel       string  `json:"tourLevel"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	DiscountPercent float64 `json:"discountPercent"`
	BaseTotal       float64 `json:"baseTotal"`
	Total           float64 `json:"total"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

func toBookingDTO(b models.Booking) bookingDTO {
	return bookingDTO{
		ReferenceCode:   b.ReferenceCode,
		TourID:          b.TourID,
		TourName:        b.TourName,
		FullName:        b.FullName,
		Email:           b.Email,
		Phone:           b.Phone,
		Country:         b.Country,
		Region:          b.Region,
		Adults:          b.Adults,
		Children:        b.Children,
		Rooms:           b.Rooms,
		ArrivalDate:     b.ArrivalDate,
		TourLevel:       b.TourLevel,
		SpecialRequests: b.SpecialRequests,
		DiscountPercent: b.DiscountPercent,
		BaseTotal:       b.BaseTotal,
		Total:           b.Total,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req bookingPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Submit(models.BookingInput{
		TourID:          req.TourID,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Country:         req.Country,
		Region:          req.Region,
		Adults:          req.Adults,
		Children:        req.Children,
		Rooms:           req.Rooms,
		ArrivalDate:     req.ArrivalDate,
		TourLevel:       req.TourLevel,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"referenceCode": booking.ReferenceCode,
		"status":        booking.Status,
		"baseTotal":     booking.BaseTotal,
		"total":         booking.Total,
		"message":       "booking received, awaiting review",
	})
}

// GET /api/bookings/lookup?reference_code=..&email=..
// A miss is a normal outcome: the traveler mistyped something.
func LookupBooking(c *gin.Context) {
	booking, err := bookingService(c).Lookup(c.Query("reference_code"), c.Query("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	switch booking.Status {
	case models.BookingPending:
		c.JSON(http.StatusOK, gin.H{
			"status":  models.BookingPending,
			"message": "your booking is awaiting review",
		})
	case models.BookingCanceled:
		c.JSON(http.StatusOK, gin.H{
			"status":  models.BookingCanceled,
			"message": "this booking was declined, please contact support",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":  booking.Status,
			"booking": toBookingDTO(booking),
		})
	}
}

// GET /api/admin/bookings
func ListBookings(c *gin.Context) {
	status := models.NormalizeStatus(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	bookings, total, err := bookingService(c).ListAdmin(status, page, pageSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":   out,
		"pagination": domain.Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

func decideBooking(c *gin.Context, status string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}
	booking, err := bookingService(c).Decide(id, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "status": booking.Status})
}

// PUT /api/admin/bookings/:id/approve
func ApproveBooking(c *gin.Context) {
	decideBooking(c, models.BookingApproved)
}

// PUT /api/admin/bookings/:id/decline
func DeclineBooking(c *gin.Context) {
	decideBooking(c, models.BookingCanceled)
}

// GET /api/admin/bookings/:id/voucher
func GetBookingVoucher(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
