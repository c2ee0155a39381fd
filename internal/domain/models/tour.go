package models

import "tourops/internal/domain"

// Tour is the catalog entry a visitor browses and books against.
type Tour struct {
	ID           int64
	Slug         string
	Name         string
	Summary      string
	Description  string
	Destination  string
	DurationDays int
	CoverImage   string
	Featured     bool
	CreatedAt    string
	UpdatedAt    string
}

// TourDay is one itinerary row of a tour.
type TourDay struct {
	ID          int64
	TourID      int64
	DayNumber   int
	Title       string
	Description string
}

// PriceRow is the stored, typed form of one price-sheet entry. The flat
// "category|band" composite key only exists on the wire.
type PriceRow struct {
	TourID   int64
	Category string
	Band     domain.Band
	Price    float64
}

// TourUpdate supports PATCH-style updates via field presence.
type TourUpdate struct {
	Name         *string
	Summary      *string
	Description  *string
	Destination  *string
	DurationDays *int
	CoverImage   *string
	Featured     *bool
}
