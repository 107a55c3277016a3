package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/logger"
)

var visitColumns = []string{"id", "supervisor_id", "student_id", "internship_id", "company_id", "visit_date", "status"}

// SupervisionRepository handles visit and evaluation records
type SupervisionRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSupervisionRepository creates a new SupervisionRepository
func NewSupervisionRepository(q db.DBTX) *SupervisionRepository {
	return &SupervisionRepository{db: q, sb: newBuilder()}
}

// CreateVisit inserts a visit record
func (r *SupervisionRepository) CreateVisit(ctx context.Context, v *models.VisitLocation) error {
	if v.Status == "" {
		v.Status = models.VisitPending
	}
	sql, args, err := r.sb.Insert("visit_locations").
		Columns("supervisor_id", "student_id", "internship_id", "company_id", "visit_date", "status").
		Values(v.SupervisorID, v.StudentID, v.InternshipID, v.CompanyID, v.VisitDate, v.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create visit query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&v.ID); err != nil {
		logger.Error().Err(err).Int64("studentID", v.StudentID).Msg("Error creating visit")
		return fmt.Errorf("error creating visit: %w", err)
	}
	return nil
}

// GetVisit retrieves one visit by id
func (r *SupervisionRepository) GetVisit(ctx context.Context, id int64) (*models.VisitLocation, error) {
	sql, args, err := r.sb.Select(visitColumns...).From("visit_locations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get visit query: %w", err)
	}

	var v models.VisitLocation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.SupervisorID, &v.StudentID, &v.InternshipID, &v.CompanyID, &v.VisitDate, &v.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVisitNotFound
		}
		logger.Error().Err(err).Int64("visitID", id).Msg("Error scanning visit row")
		return nil, fmt.Errorf("error retrieving visit: %w", err)
	}
	return &v, nil
}

// ListVisitsBySupervisor lists a supervisor's visits, soonest first
func (r *SupervisionRepository) ListVisitsBySupervisor(ctx context.Context, supervisorID int64) ([]*models.VisitLocation, error) {
	sql, args, err := r.sb.Select(visitColumns...).
		From("visit_locations").
		Where(squirrel.Eq{"supervisor_id": supervisorID}).
		OrderBy("visit_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list visits query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error listing visits")
		return nil, fmt.Errorf("error listing visits: %w", err)
	}
	defer rows.Close()

	visits := make([]*models.VisitLocation, 0)
	for rows.Next() {
		var v models.VisitLocation
		if err := rows.Scan(&v.ID, &v.SupervisorID, &v.StudentID, &v.InternshipID, &v.CompanyID, &v.VisitDate, &v.Status); err != nil {
			return nil, fmt.Errorf("error scanning visit: %w", err)
		}
		visits = append(visits, &v)
	}
	return visits, rows.Err()
}

// UpdateVisit stores a visit's date and status
func (r *SupervisionRepository) UpdateVisit(ctx context.Context, v *models.VisitLocation) error {
	sql, args, err := r.sb.Update("visit_locations").
		Set("visit_date", v.VisitDate).
		Set("status", v.Status).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update visit query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("visitID", v.ID).Msg("Error updating visit")
		return fmt.Errorf("error updating visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVisitNotFound
	}
	return nil
}

// DeleteVisit removes a visit
func (r *SupervisionRepository) DeleteVisit(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("visit_locations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete visit query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("visitID", id).Msg("Error deleting visit")
		return fmt.Errorf("error deleting visit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVisitNotFound
	}
	return nil
}

// CreateEvaluation inserts an evaluation record
func (r *SupervisionRepository) CreateEvaluation(ctx context.Context, e *models.Evaluation) error {
	sql, args, err := r.sb.Insert("evaluations").
		Columns("supervisor_id", "application_id", "evaluation_type", "total_score", "evaluation_date").
		Values(e.SupervisorID, e.ApplicationID, e.EvaluationType, e.TotalScore, e.EvaluationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create evaluation query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		logger.Error().Err(err).Int64("applicationID", e.ApplicationID).Msg("Error creating evaluation")
		return fmt.Errorf("error creating evaluation: %w", err)
	}
	return nil
}

// LatestCompletedVisit returns the most recent completed visit, or nil
func (r *SupervisionRepository) LatestCompletedVisit(ctx context.Context, studentID, internshipID int64) (*models.VisitLocation, error) {
	sql, args, err := r.sb.Select(visitColumns...).
		From("visit_locations").
		Where(squirrel.Eq{
			"student_id":    studentID,
			"internship_id": internshipID,
			"status":        models.VisitCompleted,
		}).
		OrderBy("visit_date DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest visit query: %w", err)
	}

	var v models.VisitLocation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.SupervisorID, &v.StudentID, &v.InternshipID, &v.CompanyID, &v.VisitDate, &v.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning visit row")
		return nil, fmt.Errorf("error retrieving visit: %w", err)
	}
	return &v, nil
}

// LatestEvaluation returns the most recent evaluation of the pairing, or nil
func (r *SupervisionRepository) LatestEvaluation(ctx context.Context, supervisorID, applicationID int64) (*models.Evaluation, error) {
	sql, args, err := r.sb.Select("id", "supervisor_id", "application_id", "evaluation_type", "total_score", "evaluation_date").
		From("evaluations").
		Where(squirrel.Eq{"supervisor_id": supervisorID, "application_id": applicationID}).
		OrderBy("evaluation_date DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest evaluation query: %w", err)
	}

	var e models.Evaluation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.SupervisorID, &e.ApplicationID, &e.EvaluationType, &e.TotalScore, &e.EvaluationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("applicationID", applicationID).Msg("Error scanning evaluation row")
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}
	return &e, nil
}

// CountEvaluationsBySupervisor counts evaluations written by the supervisor
func (r *SupervisionRepository) CountEvaluationsBySupervisor(ctx context.Context, supervisorID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("evaluations").
		Where(squirrel.Eq{"supervisor_id": supervisorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count evaluations query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error counting evaluations")
		return 0, fmt.Errorf("error counting evaluations: %w", err)
	}
	return n, nil
}
