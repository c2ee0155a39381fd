package models

import "strings"

// Tour request statuses track the sales follow-up, not the trip itself.
const (
	RequestNew       = "new"
	RequestContacted = "contacted"
	RequestClosed    = "closed"
)

func NormalizeRequestStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RequestNew:
		return RequestNew
	case RequestContacted:
		return RequestContacted
	case RequestClosed:
		return RequestClosed
	default:
		return ""
	}
}

// TourRequest is a custom "personalise your tour" enquiry.
type TourRequest struct {
	ID            int64
	ReferenceCode string
	FullName      string
	Email         string
	Phone         string
	Country       string
	DurationDays  int
	Adults        int
	Children      int
	Budget        string
	TourLevel     string
	Destinations  string
	Notes         string
	Status        string
	CreatedAt     string
}
