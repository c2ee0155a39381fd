package models

// Destination is a marketing region tours are grouped under.
type Destination struct {
	ID          int64
	Name        string
	Region      string
	Description string
	ImageURL    string
}

// Promotion is a time-boxed discount attached to one tour. An active
// promotion supplies the discount percent applied to quotes and bookings.
type Promotion struct {
	ID       int64
	TourID   int64
	Title    string
	Percent  float64
	StartsAt string
	EndsAt   string
	Active   bool
}

// BlogPost is a marketing article.
type BlogPost struct {
	ID          int64
	Slug        string
	Title       string
	Excerpt     string
	Body        string
	Author      string
	PublishedAt string
}

// FAQ is one question/answer pair, ordered by Position.
type FAQ struct {
	ID       int64
	Question string
	Answer   string
	Position int
}

// Testimonial statuses: submitted entries wait for moderation.
const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
)

type Testimonial struct {
	ID         int64
	AuthorName string
	Country    string
	Rating     int
	Message    string
	Status     string
	CreatedAt  string
}
