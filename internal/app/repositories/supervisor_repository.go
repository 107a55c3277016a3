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
	"github.com/yigit/supervision/internal/pkg/dberrors"
	"github.com/yigit/supervision/internal/pkg/logger"
)

var supervisorColumns = []string{"id", "user_id", "zone_id", "area_id", "position", "created_at"}

// SupervisorRepository handles supervisor database operations
type SupervisorRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSupervisorRepository creates a new SupervisorRepository
func NewSupervisorRepository(q db.DBTX) *SupervisorRepository {
	return &SupervisorRepository{db: q, sb: newBuilder()}
}

// Create inserts a supervisor profile for an existing user
func (r *SupervisorRepository) Create(ctx context.Context, s *models.Supervisor) error {
	sql, args, err := r.sb.Insert("supervisors").
		Columns("user_id", "zone_id", "area_id", "position").
		Values(s.UserID, s.ZoneID, s.AreaID, s.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create supervisor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "supervisors_user_id_key"):
			return apperrors.NewConflictError("user already has a supervisor profile")
		case dberrors.IsForeignKeyError(err):
			return apperrors.NewValidationError("supervisor references an unknown user, zone or area")
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error creating supervisor")
		return fmt.Errorf("error creating supervisor: %w", err)
	}
	s.AssignedStudents = []int64{}
	return nil
}

// GetByID retrieves a supervisor with its assigned students
func (r *SupervisorRepository) GetByID(ctx context.Context, id int64) (*models.Supervisor, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the supervisor profile of a user
func (r *SupervisorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Supervisor, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *SupervisorRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Supervisor, error) {
	sql, args, err := r.sb.Select(supervisorColumns...).From("supervisors").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get supervisor query: %w", err)
	}

	var s models.Supervisor
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.UserID, &s.ZoneID, &s.AreaID, &s.Position, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		logger.Error().Err(err).Msg("Error scanning supervisor row")
		return nil, fmt.Errorf("error retrieving supervisor: %w", err)
	}

	if err := r.loadAssignments(ctx, []*models.Supervisor{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByZone lists a zone's supervisors in insertion order
func (r *SupervisorRepository) ListByZone(ctx context.Context, zoneID int64) ([]*models.Supervisor, error) {
	sql, args, err := r.sb.Select(supervisorColumns...).
		From("supervisors").
		Where(squirrel.Eq{"zone_id": zoneID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list supervisors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("zoneID", zoneID).Msg("Error listing supervisors")
		return nil, fmt.Errorf("error listing supervisors: %w", err)
	}

	supervisors := make([]*models.Supervisor, 0)
	for rows.Next() {
		var s models.Supervisor
		if err := rows.Scan(&s.ID, &s.UserID, &s.ZoneID, &s.AreaID, &s.Position, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning supervisor: %w", err)
		}
		supervisors = append(supervisors, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing supervisors: %w", err)
	}

	if err := r.loadAssignments(ctx, supervisors); err != nil {
		return nil, err
	}
	return supervisors, nil
}

// loadAssignments fills AssignedStudents for each supervisor with one query
func (r *SupervisorRepository) loadAssignments(ctx context.Context, supervisors []*models.Supervisor) error {
	if len(supervisors) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Supervisor, len(supervisors))
	ids := make([]int64, 0, len(supervisors))
	for _, s := range supervisors {
		s.AssignedStudents = []int64{}
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	sql, args, err := r.sb.Select("supervisor_id", "student_id").
		From("supervisor_students").
		Where(squirrel.Eq{"supervisor_id": ids}).
		OrderBy("supervisor_id", "ordinal").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build load assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading supervisor assignments")
		return fmt.Errorf("error loading assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var supervisorID, studentID int64
		if err := rows.Scan(&supervisorID, &studentID); err != nil {
			return fmt.Errorf("error scanning assignment: %w", err)
		}
		s := byID[supervisorID]
		s.AssignedStudents = append(s.AssignedStudents, studentID)
	}
	return rows.Err()
}

// SetArea links the supervisor to an area
func (r *SupervisorRepository) SetArea(ctx context.Context, supervisorID, areaID int64) error {
	sql, args, err := r.sb.Update("supervisors").
		Set("area_id", areaID).
		Where(squirrel.Eq{"id": supervisorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set supervisor area query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error setting supervisor area")
		return fmt.Errorf("error setting supervisor area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}
	return nil
}

// UpdatePosition changes the supervisor's job title
func (r *SupervisorRepository) UpdatePosition(ctx context.Context, supervisorID int64, position string) error {
	sql, args, err := r.sb.Update("supervisors").
		Set("position", position).
		Where(squirrel.Eq{"id": supervisorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update supervisor position query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error updating supervisor position")
		return fmt.Errorf("error updating supervisor position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}
	return nil
}

// Delete removes the supervisor profile. The schema drops its assignment rows
// and clears the student and area references that pointed at it.
func (r *SupervisorRepository) Delete(ctx context.Context, supervisorID int64) error {
	sql, args, err := r.sb.Delete("supervisors").Where(squirrel.Eq{"id": supervisorID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete supervisor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error deleting supervisor")
		return fmt.Errorf("error deleting supervisor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}
	return nil
}
