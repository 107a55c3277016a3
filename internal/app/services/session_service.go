package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/auth"
	"github.com/yigit/supervision/internal/pkg/metrics"
)

// SessionService issues, verifies and revokes session tokens and checks
// application credentials.
type SessionService struct {
	users      repositories.IUserRepository
	appCreds   repositories.IAppCredentialRepository
	blacklist  repositories.ITokenBlacklistRepository
	jwtService *auth.JWTService
	now        func() time.Time
	logger     zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	users repositories.IUserRepository,
	appCreds repositories.IAppCredentialRepository,
	blacklist repositories.ITokenBlacklistRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		users:      users,
		appCreds:   appCreds,
		blacklist:  blacklist,
		jwtService: jwtService,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock overrides the time source
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	s.jwtService = s.jwtService.WithClock(now)
	return s
}

// IssueToken authenticates email/password and returns a signed session token
func (s *SessionService) IssueToken(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			metrics.AuthFailures.WithLabelValues("password").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		metrics.AuthFailures.WithLabelValues("password").Inc()
		s.logger.Info().Int64("userID", user.ID).Msg("Password mismatch on login")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	issued, err := s.jwtService.Generate(user.Email, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	metrics.TokensIssued.Inc()

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(issued.ExpiresAt.Sub(s.now()).Seconds()),
			ExpiresAt:   issued.ExpiresAt,
			Role:        user.Role.String(),
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// upgradeHash moves a legacy hash to argon2id. Failure only costs another rehash next login.
func (s *SessionService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to rehash password")
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to store upgraded password hash")
		return
	}
	user.PasswordHash = hash
	s.logger.Info().Int64("userID", user.ID).Msg("Upgraded legacy password hash")
}

// VerifyToken validates the token and resolves its user. Revoked tokens are
// rejected even while their signature and expiry are still valid.
func (s *SessionService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues("token").Inc()
		return nil, err
	}

	revoked, err := s.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		metrics.AuthFailures.WithLabelValues("token").Inc()
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: subject no longer exists", apperrors.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("error resolving token subject: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

// Revoke blacklists the token. Revoking twice succeeds.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.ErrTokenInvalid
	}

	now := s.now()
	expiresAt, ok := s.jwtService.ExpiryOf(token)
	if !ok {
		expiresAt = now.Add(s.jwtService.TTL())
	}

	if err := s.blacklist.Add(ctx, models.BlacklistedToken{
		Token:         token,
		ExpiresAt:     expiresAt,
		InvalidatedAt: now,
	}); err != nil {
		return err
	}
	metrics.TokensRevoked.Inc()
	return nil
}

// IsRevoked reports whether the token is on the blacklist
func (s *SessionService) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.blacklist.Exists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return revoked, nil
}

// VerifyAppCredentials checks an application id/key pair and records its use
func (s *SessionService) VerifyAppCredentials(ctx context.Context, appID, appKey string) (bool, error) {
	if appID == "" || appKey == "" {
		return false, nil
	}

	cred, err := s.appCreds.GetByAppID(ctx, appID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			metrics.AuthFailures.WithLabelValues("app").Inc()
			return false, nil
		}
		return false, fmt.Errorf("error loading app credential: %w", err)
	}

	if !cred.IsActive || !auth.CheckAppKey(cred.AppKeyHash, appKey) {
		metrics.AuthFailures.WithLabelValues("app").Inc()
		return false, nil
	}

	if err := s.appCreds.TouchLastUsed(ctx, cred.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("appID", appID).Msg("Failed to record app credential use")
	}
	return true, nil
}

// CreateAppCredential registers a new client application and returns its
// plaintext key. Only the hash is stored.
func (s *SessionService) CreateAppCredential(ctx context.Context, name, description string) (*models.AppCredential, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", apperrors.NewValidationError("app name is required")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", fmt.Errorf("error generating app key: %w", err)
	}
	appKey := hex.EncodeToString(raw)

	hash, err := auth.HashAppKey(appKey)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing app key: %w", err)
	}

	cred := &models.AppCredential{
		AppID:       uuid.NewString(),
		AppKeyHash:  hash,
		AppName:     name,
		Description: description,
		IsActive:    true,
	}
	if err := s.appCreds.Create(ctx, cred); err != nil {
		return nil, "", err
	}
	return cred, appKey, nil
}

// PurgeExpiredRevocations drops blacklist entries whose tokens have expired
func (s *SessionService) PurgeExpiredRevocations(ctx context.Context) (int64, error) {
	n, err := s.blacklist.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("deletedCount", n).Msg("Purged expired blacklist entries")
	}
	return n, nil
}

// RequireRole fails unless the user holds exactly the given role
func RequireRole(user *models.User, role models.Role) error {
	if user == nil || user.Role != role {
		return apperrors.ErrRoleMismatch
	}
	return nil
}
