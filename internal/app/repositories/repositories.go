package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/supervision/internal/db"
)

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	AppCredentialRepository *AppCredentialRepository
	TokenRepository         *TokenRepository
	ZoneRepository          *ZoneRepository
	AreaRepository          *AreaRepository
	SupervisorRepository    *SupervisorRepository
	StudentRepository       *StudentRepository
	AssignmentRepository    *AssignmentRepository
	InternshipRepository    *InternshipRepository
	SupervisionRepository   *SupervisionRepository
}

// NewRepositories initializes all repositories against q, which may be a pool or a transaction
func NewRepositories(q db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(q),
		AppCredentialRepository: NewAppCredentialRepository(q),
		TokenRepository:         NewTokenRepository(q),
		ZoneRepository:          NewZoneRepository(q),
		AreaRepository:          NewAreaRepository(q),
		SupervisorRepository:    NewSupervisorRepository(q),
		StudentRepository:       NewStudentRepository(q),
		AssignmentRepository:    NewAssignmentRepository(q),
		InternshipRepository:    NewInternshipRepository(q),
		SupervisionRepository:   NewSupervisionRepository(q),
	}
}

// ZoneScope exposes the assignment-related repositories as a scope
func (r *Repositories) ZoneScope() ZoneScope {
	return ZoneScope{
		Zones:       r.ZoneRepository,
		Areas:       r.AreaRepository,
		Supervisors: r.SupervisorRepository,
		Students:    r.StudentRepository,
		Assignments: r.AssignmentRepository,
		Users:       r.UserRepository,
	}
}

// zoneLock builds the statement that takes a zone's transaction-scoped
// advisory lock. The whole 64-bit zone id is the key so distinct zones never
// share a lock.
func zoneLock(zoneID int64) (string, []any) {
	return "SELECT pg_advisory_xact_lock($1::bigint)", []any{zoneID}
}

// TxManager serializes assignment writes per zone with transaction-scoped advisory locks
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// InZone opens a transaction, takes the zone's advisory lock and runs fn with
// repositories bound to that transaction. The lock is released on commit or rollback.
func (m *TxManager) InZone(ctx context.Context, zoneID int64, fn func(ctx context.Context, scope ZoneScope) error) error {
	return db.WithTransaction(ctx, m.pool, func(ctx context.Context, tx pgx.Tx) error {
		sql, args := zoneLock(zoneID)
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to lock zone %d: %w", zoneID, err)
		}
		return fn(ctx, NewRepositories(tx).ZoneScope())
	})
}

var _ ZoneLocker = (*TxManager)(nil)
