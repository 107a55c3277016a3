package services

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// maxStatusLookups bounds the concurrent per-student lookups of one request
const maxStatusLookups = 8

// WorkloadService derives supervisor workload and per-student supervision
// status. It only reads and may be called concurrently.
type WorkloadService struct {
	supervisors repositories.ISupervisorRepository
	students    repositories.IStudentRepository
	internships repositories.IInternshipRepository
	supervision repositories.ISupervisionRepository
	logger      zerolog.Logger
}

// NewWorkloadService creates a new WorkloadService
func NewWorkloadService(
	supervisors repositories.ISupervisorRepository,
	students repositories.IStudentRepository,
	internships repositories.IInternshipRepository,
	supervision repositories.ISupervisionRepository,
	logger zerolog.Logger,
) *WorkloadService {
	return &WorkloadService{
		supervisors: supervisors,
		students:    students,
		internships: internships,
		supervision: supervision,
		logger:      logger,
	}
}

// SupervisorForUser resolves the supervisor profile of a user
func (s *WorkloadService) SupervisorForUser(ctx context.Context, userID int64) (*models.Supervisor, error) {
	return s.supervisors.GetByUserID(ctx, userID)
}

// GetWorkload counts the supervisor's students and the evaluations they wrote
func (s *WorkloadService) GetWorkload(ctx context.Context, supervisorID int64) (*dto.WorkloadSummary, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	completed, err := s.supervision.CountEvaluationsBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	return &dto.WorkloadSummary{
		SupervisorID:             supervisorID,
		AssignedStudentCount:     len(supervisor.AssignedStudents),
		CompletedEvaluationCount: completed,
	}, nil
}

// GetDashboard summarises total, reviewed and pending students
func (s *WorkloadService) GetDashboard(ctx context.Context, supervisorID int64) (*dto.Dashboard, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	completed, err := s.supervision.CountEvaluationsBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	total := len(supervisor.AssignedStudents)
	return &dto.Dashboard{
		SupervisorID:     supervisor.ID,
		ZoneID:           supervisor.ZoneID,
		AreaID:           supervisor.AreaID,
		TotalStudents:    total,
		CompletedReviews: completed,
		PendingReviews:   max(total-completed, 0),
	}, nil
}

// GetAssignedStudentsWithStatus lists the supervisor's students with their
// supervision progress as of now. A supervisor with no students yields
// ErrNoAssignedStudents rather than an empty list.
func (s *WorkloadService) GetAssignedStudentsWithStatus(ctx context.Context, supervisorID int64, now time.Time) ([]dto.StudentSupervisionView, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if len(supervisor.AssignedStudents) == 0 {
		return nil, apperrors.ErrNoAssignedStudents
	}

	ordered, err := s.assignedStudents(ctx, supervisor)
	if err != nil {
		return nil, err
	}

	views := make([]dto.StudentSupervisionView, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxStatusLookups)
	for i, student := range ordered {
		g.Go(func() error {
			view, err := s.studentView(gctx, supervisorID, student, now)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// assignedStudents loads the supervisor's students in assignment order. Every
// id must resolve before any status lookup is started.
func (s *WorkloadService) assignedStudents(ctx context.Context, supervisor *models.Supervisor) ([]*models.Student, error) {
	students, err := s.students.ListByIDs(ctx, supervisor.AssignedStudents)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	ordered := make([]*models.Student, 0, len(supervisor.AssignedStudents))
	for _, id := range supervisor.AssignedStudents {
		student, ok := byID[id]
		if !ok {
			s.logger.Warn().Int64("supervisorID", supervisor.ID).Int64("studentID", id).Msg("Assigned student record missing")
			return nil, apperrors.ErrStudentNotFound
		}
		ordered = append(ordered, student)
	}
	return ordered, nil
}

// ListStudents is GetAssignedStudentsWithStatus narrowed to one supervision
// status. An empty status returns every student. A filter that matches
// nobody is reported as not found, the same as having no students at all.
func (s *WorkloadService) ListStudents(ctx context.Context, supervisorID int64, now time.Time, status string) ([]dto.StudentSupervisionView, error) {
	want, err := dto.ParseSupervisionStatus(status)
	if err != nil {
		return nil, err
	}

	views, err := s.GetAssignedStudentsWithStatus(ctx, supervisorID, now)
	if err != nil || want == "" {
		return views, err
	}

	filtered := make([]dto.StudentSupervisionView, 0, len(views))
	for _, v := range views {
		if v.SupervisionStatus == want {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no students with supervision status " + want)
	}
	return filtered, nil
}

// SearchStudents matches query, case-insensitively, against the name, email
// and registration number of the supervisor's own students.
func (s *WorkloadService) SearchStudents(ctx context.Context, supervisorID int64, query string) ([]dto.StudentSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}

	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if len(supervisor.AssignedStudents) == 0 {
		return nil, apperrors.ErrNoAssignedStudents
	}

	ordered, err := s.assignedStudents(ctx, supervisor)
	if err != nil {
		return nil, err
	}

	out := []dto.StudentSummary{}
	for _, st := range ordered {
		summary := dto.NewStudentSummary(st)
		haystack := []string{
			summary.FirstName,
			summary.LastName,
			summary.FirstName + " " + summary.LastName,
			summary.Email,
			summary.RegistrationNumber,
		}
		if slices.ContainsFunc(haystack, func(field string) bool {
			return strings.Contains(strings.ToLower(field), query)
		}) {
			out = append(out, summary)
		}
	}
	return out, nil
}

func (s *WorkloadService) studentView(ctx context.Context, supervisorID int64, student *models.Student, now time.Time) (dto.StudentSupervisionView, error) {
	view := dto.StudentSupervisionView{
		StudentID:          student.ID,
		RegistrationNumber: student.RegistrationNumber,
	}
	if student.User != nil {
		view.FirstName = student.User.FirstName
		view.LastName = student.User.LastName
		view.Email = student.User.Email
	}

	app, err := s.internships.GetActiveApplication(ctx, student.ID)
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		view.SupervisionStatus, view.AssessmentStatus, view.VisitStatus = deriveStatus(false, false)
		return view, nil
	case err != nil:
		return view, err
	}

	internship := app.Internship
	view.InternshipTitle = internship.Title
	view.StartDate = internship.StartDate
	view.EndDate = internship.EndDate
	view.DaysLeft = DaysLeft(internship.EndDate, now)
	if internship.Company != nil {
		view.CompanyName = internship.Company.Name
	}

	visit, err := s.supervision.LatestCompletedVisit(ctx, student.ID, internship.ID)
	if err != nil {
		return view, err
	}
	evaluation, err := s.supervision.LatestEvaluation(ctx, supervisorID, app.ID)
	if err != nil {
		return view, err
	}

	view.SupervisionStatus, view.AssessmentStatus, view.VisitStatus = deriveStatus(visit != nil, evaluation != nil)
	return view, nil
}

// deriveStatus maps visit and evaluation existence to the three status labels
func deriveStatus(visited, evaluated bool) (supervision, assessment, visit string) {
	switch {
	case visited && evaluated:
		supervision = dto.SupervisionComplete
	case visited:
		supervision = dto.SupervisionHalf
	default:
		supervision = dto.SupervisionNotStarted
	}

	assessment = dto.AssessmentNotStarted
	if evaluated {
		assessment = dto.AssessmentCompleted
	}

	visit = dto.VisitNotVisited
	if visited {
		visit = dto.VisitCompleted
	}
	return supervision, assessment, visit
}

// DaysLeft is the ceiling of the whole days between now and end. It goes
// negative once the internship has ended.
func DaysLeft(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Seconds() / 86400))
}
