package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/config"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/auth"
)

// Store is the set of repositories the seeder writes to
type Store struct {
	Users    repositories.IUserRepository
	AppCreds repositories.IAppCredentialRepository
	Zones    repositories.IZoneRepository
}

// StoreFrom picks the seeder's repositories out of the full set
func StoreFrom(r *repositories.Repositories) Store {
	return Store{Users: r.UserRepository, AppCreds: r.AppCredentialRepository, Zones: r.ZoneRepository}
}

// CreateDefaultData creates the bootstrap application credential, zone leader
// and zone if they don't exist. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, store Store, cfg config.SeedConfig, lgr zerolog.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	lgr.Info().Msg("Checking/Creating default data (app credential, zone)...")
	var finalErr error

	// --- Application credential --- //
	if _, err := store.AppCreds.GetByAppID(ctx, cfg.AppID); errors.Is(err, apperrors.ErrResourceNotFound) {
		hash, err := auth.HashAppKey(cfg.AppKey)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
		} else {
			cred := &models.AppCredential{
				AppID:       cfg.AppID,
				AppKeyHash:  hash,
				AppName:     "default",
				Description: "created at startup",
				IsActive:    true,
			}
			if err := store.AppCreds.Create(ctx, cred); err != nil && !errors.Is(err, apperrors.ErrConflict) {
				lgr.Error().Err(err).Msg("Error creating default app credential")
				finalErr = errors.Join(finalErr, err)
			}
		}
	} else if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// --- Zone leader --- //
	var leaderID *int64
	if cfg.LeaderEmail != "" && cfg.LeaderPassword != "" {
		leader, err := store.Users.GetByEmail(ctx, cfg.LeaderEmail)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			hash, hashErr := auth.HashPassword(cfg.LeaderPassword)
			if hashErr != nil {
				finalErr = errors.Join(finalErr, hashErr)
				break
			}
			leader = &models.User{
				Email:        cfg.LeaderEmail,
				PasswordHash: hash,
				Role:         models.RoleSupervisorSchool,
				FirstName:    "Zone",
				LastName:     "Leader",
				IsActive:     true,
			}
			if err := store.Users.Create(ctx, leader); err != nil {
				lgr.Error().Err(err).Msg("Error creating zone leader")
				finalErr = errors.Join(finalErr, err)
				leader = nil
			}
		case err != nil:
			finalErr = errors.Join(finalErr, err)
		}
		if leader != nil {
			leaderID = &leader.ID
		}
	}

	// --- Zone --- //
	if cfg.ZoneName != "" {
		zone := &models.Zone{Name: cfg.ZoneName, Description: "created at startup", LeaderUserID: leaderID}
		if err := store.Zones.Create(ctx, zone); err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Msg("Error creating default zone")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation complete")
	}
	return finalErr
}
