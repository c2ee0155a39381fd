package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// RequestService handles "personalise your tour" enquiries.
type RequestService struct {
	Repo      repositories.RequestRepository
	DB        *sql.DB
	RequestID string
}

func (s RequestService) repo() repositories.RequestRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.RequestRepository{DB: db}
}

func validateRequest(q models.TourRequest) domain.FieldErrors {
	var errs domain.FieldErrors
	add := func(field, msg string) {
		errs = append(errs, domain.ValidationError{Field: field, Msg: msg})
	}

	if strings.TrimSpace(q.FullName) == "" {
		add("full_name", "full name is required")
	}
	if strings.TrimSpace(q.Email) == "" {
		add("email", "email is required")
	} else if validate.Var(q.Email, "email") != nil {
		add("email", "email is not valid")
	}
	if q.DurationDays < 1 {
		add("duration_days", "duration must be at least 1 day")
	}
	if q.Adults < 1 {
		add("adults", "at least one adult is required")
	}
	if q.Children < 0 {
		add("children", "children count cannot be negative")
	}
	return errs
}

func (s RequestService) Submit(q models.TourRequest) (models.TourRequest, error) {
	q.FullName = utils.NormalizeSpace(q.FullName)
	q.Email = strings.TrimSpace(q.Email)
	q.Phone = utils.NormalizePhone(q.Phone)
	q.Country = strings.TrimSpace(q.Country)
	q.Budget = strings.TrimSpace(q.Budget)
	q.TourLevel = strings.TrimSpace(q.TourLevel)
	q.Destinations = strings.TrimSpace(q.Destinations)
	q.Notes = strings.TrimSpace(q.Notes)

	if errs := validateRequest(q); len(errs) > 0 {
		return models.TourRequest{}, errs
	}

	q.ReferenceCode = NewReferenceCode("TRQ")
	q.Status = models.RequestNew

	id, err := s.repo().Insert(q)
	if err != nil {
		return models.TourRequest{}, domain.InternalError{Msg: "failed to store tour request", Err: err}
	}
	q.ID = id

	utils.LogEvent(s.RequestID, "request", "submit", fmt.Sprintf("id=%d ref=%s", id, q.ReferenceCode))
	return q, nil
}

func (s RequestService) List(status string) ([]models.TourRequest, error) {
	if status != "" {
		if status = models.NormalizeRequestStatus(status); status == "" {
			return nil, domain.ValidationError{Field: "status", Msg: "status must be new, contacted or closed"}
		}
	}
	out, err := s.repo().List(status)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list tour requests", Err: err}
	}
	return out, nil
}

func (s RequestService) UpdateStatus(id int64, status string) error {
	normalized := models.NormalizeRequestStatus(status)
	if normalized == "" {
		return domain.ValidationError{Field: "status", Msg: "status must be new, contacted or closed"}
	}
	if err := s.repo().UpdateStatus(id, normalized); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "tour request", Err: err}
		}
		return domain.InternalError{Msg: "failed to update tour request", Err: err}
	}
	utils.LogEvent(s.RequestID, "request", "update_status", fmt.Sprintf("id=%d status=%s", id, normalized))
	return nil
}
