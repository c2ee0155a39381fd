package models

import "strings"

// Booking status values are owned by the server. Call sites sometimes send
// the accept/declined aliases; NormalizeStatus folds those in.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingCanceled = "canceled"
)

// NormalizeStatus maps a status or one of its aliases to the stored value.
// Unknown input returns "".
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case BookingPending:
		return BookingPending
	case BookingApproved, "accept", "accepted":
		return BookingApproved
	case BookingCanceled, "declined", "decline", "cancelled":
		return BookingCanceled
	default:
		return ""
	}
}

// BookingInput is the user-entered submission payload.
type BookingInput struct {
	TourID          int64
	FullName        string
	Email           string
	Phone           string
	Country         string
	Region          string
	Adults          int
	Children        int
	Rooms           int
	ArrivalDate     string
	TourLevel       string
	SpecialRequests string
}

// PartySize is what the tiered calculator prices: everyone travelling.
func (in BookingInput) PartySize() int {
	return in.Adults + in.Children
}

// Booking is a stored booking request. ReferenceCode is the only artifact
// the requester keeps; lookup is by reference code + email.
type Booking struct {
	ID              int64
	ReferenceCode   string
	TourID          int64
	TourName        string
	FullName        string
	Email           string
	Phone           string
	Country         string
	Region          string
	Adults          int
	Children        int
	Rooms           int
	ArrivalDate     string
	TourLevel       string
	SpecialRequests string
	DiscountPercent float64
	BaseTotal       float64
	Total           float64
	Status          string
	CreatedAt       string
}
