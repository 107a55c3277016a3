package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// VisitInput plans a visit to a student
type VisitInput struct {
	StudentID int64
	VisitDate time.Time
}

// VisitUpdate changes a visit's date or status. Nil fields are kept.
type VisitUpdate struct {
	VisitDate *time.Time
	Status    *models.VisitStatus
}

// EvaluationInput records an assessment of a student's current placement
type EvaluationInput struct {
	StudentID      int64
	EvaluationType string
	TotalScore     float64
}

// VisitService records the visits and evaluations that drive a student's
// supervision status. Supervisors only see and touch their own records.
type VisitService struct {
	supervisors repositories.ISupervisorRepository
	internships repositories.IInternshipRepository
	supervision repositories.ISupervisionRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewVisitService creates a new VisitService
func NewVisitService(
	supervisors repositories.ISupervisorRepository,
	internships repositories.IInternshipRepository,
	supervision repositories.ISupervisionRepository,
	logger zerolog.Logger,
) *VisitService {
	return &VisitService{
		supervisors: supervisors,
		internships: internships,
		supervision: supervision,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock overrides the time source
func (s *VisitService) WithClock(now func() time.Time) *VisitService {
	s.now = now
	return s
}

// ListVisits returns the supervisor's visits, soonest first
func (s *VisitService) ListVisits(ctx context.Context, supervisorID int64) ([]*models.VisitLocation, error) {
	return s.supervision.ListVisitsBySupervisor(ctx, supervisorID)
}

// CreateVisit plans a pending visit to one of the supervisor's students at the
// company of the student's active internship.
func (s *VisitService) CreateVisit(ctx context.Context, supervisorID int64, in VisitInput) (*models.VisitLocation, error) {
	if in.VisitDate.IsZero() {
		return nil, apperrors.NewValidationError("visit date is required")
	}

	app, err := s.placementOf(ctx, supervisorID, in.StudentID)
	if err != nil {
		return nil, err
	}

	visit := &models.VisitLocation{
		SupervisorID: supervisorID,
		StudentID:    in.StudentID,
		InternshipID: app.InternshipID,
		CompanyID:    app.Internship.CompanyID,
		VisitDate:    in.VisitDate,
		Status:       models.VisitPending,
	}
	if err := s.supervision.CreateVisit(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("supervisorID", supervisorID).
		Int64("studentID", in.StudentID).
		Int64("visitID", visit.ID).
		Msg("Visit planned")
	return visit, nil
}

// UpdateVisit reschedules a visit or moves its status forward
func (s *VisitService) UpdateVisit(ctx context.Context, supervisorID, visitID int64, in VisitUpdate) (*models.VisitLocation, error) {
	if in.VisitDate == nil && in.Status == nil {
		return nil, apperrors.NewValidationError("nothing to update")
	}

	visit, err := s.ownVisit(ctx, supervisorID, visitID)
	if err != nil {
		return nil, err
	}

	if in.VisitDate != nil {
		if in.VisitDate.IsZero() {
			return nil, apperrors.NewValidationError("visit date is required")
		}
		visit.VisitDate = *in.VisitDate
	}
	if in.Status != nil {
		next, err := models.ParseVisitStatus(string(*in.Status))
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if !visit.Status.CanMoveTo(next) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidState, "a completed visit cannot be reopened")
		}
		visit.Status = next
	}

	if err := s.supervision.UpdateVisit(ctx, visit); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("visitID", visitID).Str("status", string(visit.Status)).Msg("Visit updated")
	return visit, nil
}

// SetVisitStatus moves a visit to status
func (s *VisitService) SetVisitStatus(ctx context.Context, supervisorID, visitID int64, status models.VisitStatus) (*models.VisitLocation, error) {
	return s.UpdateVisit(ctx, supervisorID, visitID, VisitUpdate{Status: &status})
}

// DeleteVisit removes one of the supervisor's visits
func (s *VisitService) DeleteVisit(ctx context.Context, supervisorID, visitID int64) error {
	if _, err := s.ownVisit(ctx, supervisorID, visitID); err != nil {
		return err
	}
	if err := s.supervision.DeleteVisit(ctx, visitID); err != nil {
		return err
	}
	s.logger.Info().Int64("supervisorID", supervisorID).Int64("visitID", visitID).Msg("Visit deleted")
	return nil
}

// RecordEvaluation stores an evaluation of the student's active application,
// dated today.
func (s *VisitService) RecordEvaluation(ctx context.Context, supervisorID int64, in EvaluationInput) (*models.Evaluation, error) {
	in.EvaluationType = strings.TrimSpace(in.EvaluationType)
	switch {
	case in.EvaluationType == "":
		return nil, apperrors.NewValidationError("evaluation type is required")
	case in.TotalScore < 0 || in.TotalScore > 100:
		return nil, apperrors.NewValidationError("total score must be between 0 and 100")
	}

	app, err := s.placementOf(ctx, supervisorID, in.StudentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	eval := &models.Evaluation{
		SupervisorID:   supervisorID,
		ApplicationID:  app.ID,
		EvaluationType: in.EvaluationType,
		TotalScore:     in.TotalScore,
		EvaluationDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.supervision.CreateEvaluation(ctx, eval); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("supervisorID", supervisorID).
		Int64("applicationID", app.ID).
		Float64("score", eval.TotalScore).
		Msg("Evaluation recorded")
	return eval, nil
}

// placementOf returns the active application of a student the supervisor
// is assigned to.
func (s *VisitService) placementOf(ctx context.Context, supervisorID, studentID int64) (*models.Application, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(supervisor.AssignedStudents, studentID) {
		return nil, apperrors.NewForbiddenError("student is not assigned to this supervisor")
	}

	app, err := s.internships.GetActiveApplication(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidState, "student has no active internship")
		}
		return nil, err
	}
	return app, nil
}

// ownVisit loads a visit and hides it unless the supervisor owns it
func (s *VisitService) ownVisit(ctx context.Context, supervisorID, visitID int64) (*models.VisitLocation, error) {
	visit, err := s.supervision.GetVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.SupervisorID != supervisorID {
		return nil, apperrors.ErrVisitNotFound
	}
	return visit, nil
}
