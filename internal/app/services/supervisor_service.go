package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/metrics"
)

// ProfileUpdate carries the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Position  *string
}

// SupervisorService manages a supervisor's own profile
type SupervisorService struct {
	zones       repositories.ZoneLocker
	supervisors repositories.ISupervisorRepository
	users       repositories.IUserRepository
	logger      zerolog.Logger
}

// NewSupervisorService creates a new SupervisorService
func NewSupervisorService(
	zones repositories.ZoneLocker,
	supervisors repositories.ISupervisorRepository,
	users repositories.IUserRepository,
	logger zerolog.Logger,
) *SupervisorService {
	return &SupervisorService{zones: zones, supervisors: supervisors, users: users, logger: logger}
}

// SupervisorForUser resolves the supervisor profile of a user
func (s *SupervisorService) SupervisorForUser(ctx context.Context, userID int64) (*models.Supervisor, error) {
	return s.supervisors.GetByUserID(ctx, userID)
}

// Profile returns the supervisor with its user record
func (s *SupervisorService) Profile(ctx context.Context, supervisorID int64) (*dto.SupervisorProfile, error) {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, supervisor.UserID)
	if err != nil {
		return nil, err
	}
	profile := dto.NewSupervisorProfile(supervisor, user)
	return &profile, nil
}

// UpdateProfile changes the supervisor's name and position in one transaction
func (s *SupervisorService) UpdateProfile(ctx context.Context, supervisorID int64, in ProfileUpdate) (*dto.SupervisorProfile, error) {
	if in.FirstName == nil && in.LastName == nil && in.Position == nil {
		return nil, apperrors.NewValidationError("nothing to update")
	}

	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	err = s.zones.InZone(ctx, supervisor.ZoneID, func(ctx context.Context, scope repositories.ZoneScope) error {
		if in.FirstName != nil || in.LastName != nil {
			user, err := scope.Users.GetByID(ctx, supervisor.UserID)
			if err != nil {
				return err
			}
			first, last := user.FirstName, user.LastName
			if in.FirstName != nil {
				first = strings.TrimSpace(*in.FirstName)
			}
			if in.LastName != nil {
				last = strings.TrimSpace(*in.LastName)
			}
			if first == "" || last == "" {
				return apperrors.NewValidationError("first and last name cannot be blank")
			}
			if err := scope.Users.UpdateName(ctx, user.ID, first, last); err != nil {
				return err
			}
		}
		if in.Position != nil {
			return scope.Supervisors.UpdatePosition(ctx, supervisorID, strings.TrimSpace(*in.Position))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("supervisorID", supervisorID).Msg("Supervisor profile updated")
	return s.Profile(ctx, supervisorID)
}

// Delete removes the supervisor together with their user account. Their
// students are left unassigned and any area they held loses its supervisor.
func (s *SupervisorService) Delete(ctx context.Context, supervisorID int64) error {
	supervisor, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return err
	}

	released := 0
	err = s.zones.InZone(ctx, supervisor.ZoneID, func(ctx context.Context, scope repositories.ZoneScope) error {
		// re-read under the lock; the assignment list may have moved
		current, err := scope.Supervisors.GetByID(ctx, supervisorID)
		if err != nil {
			return err
		}
		released = len(current.AssignedStudents)
		if err := scope.Supervisors.Delete(ctx, supervisorID); err != nil {
			return err
		}
		return scope.Users.Delete(ctx, current.UserID)
	})
	metrics.AssignmentOps.WithLabelValues("delete_supervisor", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("supervisorID", supervisorID).
		Int64("zoneID", supervisor.ZoneID).
		Int("releasedStudents", released).
		Msg("Supervisor deleted")
	return nil
}
