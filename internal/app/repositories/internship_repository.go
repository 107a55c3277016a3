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

// InternshipRepository handles companies, internships and applications
type InternshipRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(q db.DBTX) *InternshipRepository {
	return &InternshipRepository{db: q, sb: newBuilder()}
}

// CreateCompany inserts a company
func (r *InternshipRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("user_id", "name", "address", "latitude", "longitude").
		Values(c.UserID, c.Name, c.Address, c.Latitude, c.Longitude).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		logger.Error().Err(err).Str("name", c.Name).Msg("Error creating company")
		return fmt.Errorf("error creating company: %w", err)
	}
	return nil
}

// CreateInternship inserts an internship
func (r *InternshipRepository) CreateInternship(ctx context.Context, in *models.Internship) error {
	sql, args, err := r.sb.Insert("internships").
		Columns("company_id", "title", "start_date", "end_date").
		Values(in.CompanyID, in.Title, in.StartDate, in.EndDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create internship query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&in.ID); err != nil {
		logger.Error().Err(err).Int64("companyID", in.CompanyID).Msg("Error creating internship")
		return fmt.Errorf("error creating internship: %w", err)
	}
	return nil
}

// CreateApplication inserts an application
func (r *InternshipRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "internship_id", "status").
		Values(a.StudentID, a.InternshipID, a.Status).
		Suffix("RETURNING id, applied_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.AppliedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", a.StudentID).Msg("Error creating application")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetActiveApplication returns the student's most recent accepted application
func (r *InternshipRepository) GetActiveApplication(ctx context.Context, studentID int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.internship_id", "a.status", "a.applied_at",
		"i.id", "i.company_id", "i.title", "i.start_date", "i.end_date",
		"c.id", "c.user_id", "c.name", "c.address", "c.latitude", "c.longitude", "c.created_at",
	).
		From("applications a").
		Join("internships i ON i.id = a.internship_id").
		Join("companies c ON c.id = i.company_id").
		Where(squirrel.Eq{"a.student_id": studentID, "a.status": models.ApplicationAccepted}).
		OrderBy("a.updated_at DESC", "a.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active application query: %w", err)
	}

	var (
		a models.Application
		i models.Internship
		c models.Company
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.AppliedAt,
		&i.ID, &i.CompanyID, &i.Title, &i.StartDate, &i.EndDate,
		&c.ID, &c.UserID, &c.Name, &c.Address, &c.Latitude, &c.Longitude, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveInternship
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning active application")
		return nil, fmt.Errorf("error retrieving active application: %w", err)
	}

	i.Company = &c
	a.Internship = &i
	return &a, nil
}
