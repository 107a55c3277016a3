package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/config"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/auth"
)

type users struct{ byEmail map[string]*models.User }

func (u *users) Create(_ context.Context, user *models.User) error {
	user.ID = int64(len(u.byEmail) + 1)
	u.byEmail[user.Email] = user
	return nil
}
func (u *users) GetByID(context.Context, int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (u *users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := u.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}
func (u *users) UpdatePasswordHash(context.Context, int64, string) error { return nil }
func (u *users) UpdateName(context.Context, int64, string, string) error { return nil }
func (u *users) Delete(context.Context, int64) error                     { return nil }

type creds struct {
	byID map[string]*models.AppCredential
}

func (c *creds) Create(_ context.Context, cred *models.AppCredential) error {
	c.byID[cred.AppID] = cred
	return nil
}
func (c *creds) GetByAppID(_ context.Context, appID string) (*models.AppCredential, error) {
	if cred, ok := c.byID[appID]; ok {
		return cred, nil
	}
	return nil, apperrors.NewResourceNotFoundError("app credential not found")
}
func (c *creds) TouchLastUsed(context.Context, int64, time.Time) error { return nil }

type zones struct{ byName map[string]*models.Zone }

func (z *zones) Create(_ context.Context, zone *models.Zone) error {
	if _, ok := z.byName[zone.Name]; ok {
		return apperrors.NewConflictError("zone already exists")
	}
	z.byName[zone.Name] = zone
	return nil
}
func (z *zones) GetByID(context.Context, int64) (*models.Zone, error) {
	return nil, apperrors.ErrZoneNotFound
}

func TestCreateDefaultData(t *testing.T) {
	store := Store{
		Users:    &users{byEmail: map[string]*models.User{}},
		AppCreds: &creds{byID: map[string]*models.AppCredential{}},
		Zones:    &zones{byName: map[string]*models.Zone{}},
	}
	cfg := config.SeedConfig{
		Enabled:        true,
		AppID:          "dev-client",
		AppKey:         "dev-key",
		LeaderEmail:    "leader@school.test",
		LeaderPassword: "secret",
		ZoneName:       "Default Zone",
	}
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, store, cfg, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, store, cfg, zerolog.Nop()), "seeding twice is a no-op")

	cred, err := store.AppCreds.GetByAppID(ctx, "dev-client")
	require.NoError(t, err)
	assert.True(t, auth.CheckAppKey(cred.AppKeyHash, "dev-key"))

	leader, err := store.Users.GetByEmail(ctx, "leader@school.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupervisorSchool, leader.Role)

	zone := store.Zones.(*zones).byName["Default Zone"]
	require.NotNil(t, zone)
	assert.True(t, zone.IsLeader(leader.ID))
}

func TestCreateDefaultData_Disabled(t *testing.T) {
	assert.NoError(t, CreateDefaultData(context.Background(), Store{}, config.SeedConfig{}, zerolog.Nop()))
}
