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

// ZoneRepository handles zone database operations
type ZoneRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewZoneRepository creates a new ZoneRepository
func NewZoneRepository(q db.DBTX) *ZoneRepository {
	return &ZoneRepository{db: q, sb: newBuilder()}
}

// Create inserts a zone
func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	sql, args, err := r.sb.Insert("zones").
		Columns("name", "description", "leader_user_id").
		Values(zone.Name, zone.Description, zone.LeaderUserID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create zone query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&zone.ID, &zone.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "zones_name_key") {
			return apperrors.NewConflictError("zone already exists")
		}
		logger.Error().Err(err).Str("name", zone.Name).Msg("Error creating zone")
		return fmt.Errorf("error creating zone: %w", err)
	}
	return nil
}

// GetByID retrieves a zone by ID
func (r *ZoneRepository) GetByID(ctx context.Context, id int64) (*models.Zone, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "leader_user_id", "created_at").
		From("zones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get zone query: %w", err)
	}

	var z models.Zone
	err = r.db.QueryRow(ctx, sql, args...).Scan(&z.ID, &z.Name, &z.Description, &z.LeaderUserID, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrZoneNotFound
		}
		logger.Error().Err(err).Int64("zoneID", id).Msg("Error scanning zone row")
		return nil, fmt.Errorf("error retrieving zone: %w", err)
	}
	return &z, nil
}
