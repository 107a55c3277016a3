package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/dberrors"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// AssignmentRepository writes the supervisor_students list and the
// students.assigned_supervisor_id back reference together. Callers must run
// it inside a transaction for the two sides to stay consistent.
type AssignmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(q db.DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: q, sb: newBuilder()}
}

// Assign appends students to the supervisor and updates each student's back reference
func (r *AssignmentRepository) Assign(ctx context.Context, supervisorID int64, studentIDs []int64, areaID *int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	var next int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(ordinal), 0) FROM supervisor_students WHERE supervisor_id = $1",
		supervisorID).Scan(&next)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error reading assignment ordinal")
		return fmt.Errorf("error reading assignment ordinal: %w", err)
	}

	insert := r.sb.Insert("supervisor_students").Columns("supervisor_id", "student_id", "ordinal")
	for i, id := range studentIDs {
		insert = insert.Values(supervisorID, id, next+i+1)
	}
	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign students query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "") {
			return apperrors.NewCustomError(apperrors.ErrInvalidState, "student already assigned to a supervisor")
		}
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error inserting assignments")
		return fmt.Errorf("error assigning students: %w", err)
	}

	update := r.sb.Update("students").
		Set("assigned_supervisor_id", supervisorID).
		Where(squirrel.Eq{"id": studentIDs})
	if areaID != nil {
		update = update.Set("area_id", *areaID)
	}
	sql, args, err = update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build student back reference query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error updating student back references")
		return fmt.Errorf("error updating students: %w", err)
	}
	if int(tag.RowsAffected()) != len(studentIDs) {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ClearZone drops every assignment of the zone's students
func (r *AssignmentRepository) ClearZone(ctx context.Context, zoneID int64) error {
	sql, args, err := r.sb.Delete("supervisor_students").
		Where("student_id IN (SELECT id FROM students WHERE zone_id = ?)", zoneID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear assignments query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("zoneID", zoneID).Msg("Error clearing zone assignments")
		return fmt.Errorf("error clearing assignments: %w", err)
	}

	sql, args, err = r.sb.Update("students").
		Set("assigned_supervisor_id", nil).
		Where(squirrel.Eq{"zone_id": zoneID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear back references query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("zoneID", zoneID).Msg("Error clearing student back references")
		return fmt.Errorf("error clearing student back references: %w", err)
	}
	return nil
}

// ListStudentIDs returns the supervisor's students in assignment order
func (r *AssignmentRepository) ListStudentIDs(ctx context.Context, supervisorID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_id").
		From("supervisor_students").
		Where(squirrel.Eq{"supervisor_id": supervisorID}).
		OrderBy("ordinal").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("supervisorID", supervisorID).Msg("Error listing assignments")
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning assignment: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
