package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/geo"
	"github.com/yigit/supervision/internal/pkg/metrics"
)

// PresenceService checks whether students are physically at their host company
type PresenceService struct {
	students    repositories.IStudentRepository
	internships repositories.IInternshipRepository
	maxMeters   float64
	now         func() time.Time
	logger      zerolog.Logger
}

// NewPresenceService creates a new PresenceService. A zero radius falls back to geo.DefaultMaxMeters.
func NewPresenceService(
	students repositories.IStudentRepository,
	internships repositories.IInternshipRepository,
	maxMeters float64,
	logger zerolog.Logger,
) *PresenceService {
	if maxMeters <= 0 {
		maxMeters = geo.DefaultMaxMeters
	}
	return &PresenceService{
		students:    students,
		internships: internships,
		maxMeters:   maxMeters,
		now:         time.Now,
		logger:      logger,
	}
}

// MaxMeters returns the configured presence radius
func (s *PresenceService) MaxMeters() float64 { return s.maxMeters }

// Check compares two raw coordinates against maxMeters
func (s *PresenceService) Check(student, company *geo.Coordinate, maxMeters float64) dto.PresenceResult {
	res := dto.PresenceResult{MaxMeters: maxMeters}
	res.Within = geo.IsWithinRange(student, company, maxMeters)
	if student != nil && company != nil && student.Valid() && company.Valid() {
		d := geo.Distance(*student, *company)
		res.DistanceMeters = &d
	}
	metrics.PresenceChecks.WithLabelValues(presenceLabel(res.Within)).Inc()
	return res
}

// VerifyStudentPresence compares the student's last location with the company
// of their active internship. Missing data yields Within=false with a reason.
func (s *PresenceService) VerifyStudentPresence(ctx context.Context, studentID int64) (*dto.PresenceResult, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	res := &dto.PresenceResult{StudentID: studentID, MaxMeters: s.maxMeters}

	app, err := s.internships.GetActiveApplication(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		res.Reason = "student has no active internship"
		metrics.PresenceChecks.WithLabelValues("unknown").Inc()
		return res, nil
	}

	company := app.Internship.Company
	if company != nil {
		res.CompanyID = company.ID
	}

	switch {
	case student.CurrentLocation == nil:
		res.Reason = "student location unknown"
	case company.Location() == nil:
		res.Reason = "company location unknown"
	}
	if res.Reason != "" {
		metrics.PresenceChecks.WithLabelValues("unknown").Inc()
		return res, nil
	}

	checked := s.Check(student.CurrentLocation, company.Location(), s.maxMeters)
	res.Within = checked.Within
	res.DistanceMeters = checked.DistanceMeters
	return res, nil
}

// UpdateStudentLocation records the student's current position
func (s *PresenceService) UpdateStudentLocation(ctx context.Context, userID int64, loc geo.Coordinate) (*dto.LocationResponse, error) {
	if !loc.Valid() {
		return nil, apperrors.NewValidationError("coordinate out of range")
	}

	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.students.UpdateLocation(ctx, student.ID, loc, at); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{StudentID: student.ID, Location: loc, UpdatedAt: at}, nil
}

func presenceLabel(within bool) string {
	if within {
		return "within"
	}
	return "outside"
}
