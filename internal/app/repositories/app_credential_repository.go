package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/dberrors"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// AppCredentialRepository handles client application credentials
type AppCredentialRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAppCredentialRepository creates a new AppCredentialRepository
func NewAppCredentialRepository(q db.DBTX) *AppCredentialRepository {
	return &AppCredentialRepository{db: q, sb: newBuilder()}
}

// Create stores a credential; AppKeyHash must already be hashed
func (r *AppCredentialRepository) Create(ctx context.Context, cred *models.AppCredential) error {
	sql, args, err := r.sb.Insert("app_credentials").
		Columns("app_id", "app_key_hash", "app_name", "description", "is_active").
		Values(cred.AppID, cred.AppKeyHash, cred.AppName, cred.Description, cred.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create app credential query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cred.ID, &cred.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "app_credentials_app_id_key") {
			return apperrors.NewConflictError("app credential already exists")
		}
		logger.Error().Err(err).Str("appID", cred.AppID).Msg("Error creating app credential")
		return fmt.Errorf("error creating app credential: %w", err)
	}
	return nil
}

// GetByAppID retrieves a credential by its public app id
func (r *AppCredentialRepository) GetByAppID(ctx context.Context, appID string) (*models.AppCredential, error) {
	sql, args, err := r.sb.Select("id", "app_id", "app_key_hash", "app_name", "description", "is_active", "last_used", "created_at").
		From("app_credentials").
		Where(squirrel.Eq{"app_id": appID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get app credential query: %w", err)
	}

	var c models.AppCredential
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.AppID, &c.AppKeyHash, &c.AppName, &c.Description, &c.IsActive, &c.LastUsed, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("app credential not found")
		}
		logger.Error().Err(err).Str("appID", appID).Msg("Error scanning app credential row")
		return nil, fmt.Errorf("error retrieving app credential: %w", err)
	}
	return &c, nil
}

// TouchLastUsed records a successful credential check
func (r *AppCredentialRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	sql, args, err := r.sb.Update("app_credentials").
		Set("last_used", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build touch app credential query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("credentialID", id).Msg("Error updating app credential last_used")
		return fmt.Errorf("error updating app credential: %w", err)
	}
	return nil
}
