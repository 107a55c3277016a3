package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/dberrors"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// AreaRepository handles area database operations
type AreaRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAreaRepository creates a new AreaRepository
func NewAreaRepository(q db.DBTX) *AreaRepository {
	return &AreaRepository{db: q, sb: newBuilder()}
}

// Create inserts an area
func (r *AreaRepository) Create(ctx context.Context, area *models.Area) error {
	sql, args, err := r.sb.Insert("areas").
		Columns("zone_id", "name", "description", "supervisor_id").
		Values(area.ZoneID, area.Name, area.Description, area.SupervisorID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create area query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&area.ID, &area.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "areas_zone_name_key") {
			return apperrors.NewConflictError("area with this name already exists in zone")
		}
		logger.Error().Err(err).Int64("zoneID", area.ZoneID).Msg("Error creating area")
		return fmt.Errorf("error creating area: %w", err)
	}
	return nil
}

// ListByZone lists a zone's areas in creation order
func (r *AreaRepository) ListByZone(ctx context.Context, zoneID int64) ([]*models.Area, error) {
	sql, args, err := r.sb.Select("id", "zone_id", "name", "description", "supervisor_id", "created_at").
		From("areas").
		Where(squirrel.Eq{"zone_id": zoneID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list areas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("zoneID", zoneID).Msg("Error listing areas")
		return nil, fmt.Errorf("error listing areas: %w", err)
	}
	defer rows.Close()

	areas := make([]*models.Area, 0)
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.ZoneID, &a.Name, &a.Description, &a.SupervisorID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning area: %w", err)
		}
		areas = append(areas, &a)
	}
	return areas, rows.Err()
}
