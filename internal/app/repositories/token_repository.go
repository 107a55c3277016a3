package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// TokenRepository handles the revoked token blacklist
type TokenRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(q db.DBTX) *TokenRepository {
	return &TokenRepository{db: q, sb: newBuilder()}
}

// Add blacklists a token. Adding an already blacklisted token is a no-op.
func (r *TokenRepository) Add(ctx context.Context, entry models.BlacklistedToken) error {
	sql, args, err := r.sb.Insert("token_blacklist").
		Columns("token", "expires_at", "invalidated_at").
		Values(entry.Token, entry.ExpiresAt, entry.InvalidatedAt).
		Suffix("ON CONFLICT (token) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building blacklist token SQL")
		return fmt.Errorf("failed to build blacklist token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing blacklist token query")
		return fmt.Errorf("error blacklisting token: %w", err)
	}
	return nil
}

// Exists reports whether the token is blacklisted
func (r *TokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("token_blacklist").
		Where(squirrel.Eq{"token": token}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build blacklist lookup query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking token blacklist")
		return false, fmt.Errorf("error checking token blacklist: %w", err)
	}
	return exists, nil
}

// DeleteExpired drops entries whose token has expired by now
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("token_blacklist").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup blacklist SQL")
		return 0, fmt.Errorf("failed to build cleanup blacklist query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup blacklist query")
		return 0, fmt.Errorf("error cleaning up blacklist: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
