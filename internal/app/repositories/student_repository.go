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
	"github.com/yigit/supervision/internal/pkg/geo"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.DBTX) *StudentRepository {
	return &StudentRepository{db: q, sb: newBuilder()}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.user_id", "s.registration_number", "s.zone_id", "s.area_id", "s.assigned_supervisor_id",
		"s.location_latitude", "s.location_longitude", "s.location_updated_at",
		"u.id", "u.email", "u.role", "u.first_name", "u.last_name", "u.is_active",
	).
		From("students s").
		Join("users u ON u.id = s.user_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s        models.Student
		u        models.User
		lat, lon *float64
		role     string
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.RegistrationNumber, &s.ZoneID, &s.AreaID, &s.AssignedSupervisorID,
		&lat, &lon, &s.LocationUpdatedAt,
		&u.ID, &u.Email, &role, &u.FirstName, &u.LastName, &u.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		s.CurrentLocation = &geo.Coordinate{Latitude: *lat, Longitude: *lon}
	}
	u.Role = models.Role(role)
	s.User = &u
	return &s, nil
}

func (r *StudentRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a student profile for an existing user
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	var lat, lon *float64
	if s.CurrentLocation != nil {
		lat, lon = &s.CurrentLocation.Latitude, &s.CurrentLocation.Longitude
	}

	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "registration_number", "zone_id", "area_id", "assigned_supervisor_id",
			"location_latitude", "location_longitude", "location_updated_at").
		Values(s.UserID, s.RegistrationNumber, s.ZoneID, s.AreaID, s.AssignedSupervisorID,
			lat, lon, s.LocationUpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, ""):
			return apperrors.NewConflictError("student already exists")
		case dberrors.IsForeignKeyError(err):
			return apperrors.NewValidationError("student references an unknown user, zone or area")
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetByUserID retrieves the student profile of a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// ListByIDs returns the students with the given ids, ordered by id
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	return r.list(ctx, r.selectStudents().Where(squirrel.Eq{"s.id": ids}).OrderBy("s.id"))
}

// ListByZone lists all students of a zone ordered by id
func (r *StudentRepository) ListByZone(ctx context.Context, zoneID int64) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().Where(squirrel.Eq{"s.zone_id": zoneID}).OrderBy("s.id"))
}

// ListUnassignedInZone returns up to limit students of the zone that have
// neither an area nor a supervisor, ordered by id. Rows are locked for update.
func (r *StudentRepository) ListUnassignedInZone(ctx context.Context, zoneID int64, limit int) ([]*models.Student, error) {
	q := r.selectStudents().
		Where(squirrel.Eq{
			"s.zone_id":                zoneID,
			"s.area_id":                nil,
			"s.assigned_supervisor_id": nil,
		}).
		OrderBy("s.id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE OF s")
	return r.list(ctx, q)
}

// UpdateLocation stores the student's last reported coordinate
func (r *StudentRepository) UpdateLocation(ctx context.Context, studentID int64, loc geo.Coordinate, at time.Time) error {
	sql, args, err := r.sb.Update("students").
		Set("location_latitude", loc.Latitude).
		Set("location_longitude", loc.Longitude).
		Set("location_updated_at", at).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update location query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating student location")
		return fmt.Errorf("error updating student location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
