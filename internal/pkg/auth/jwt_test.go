package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

func newTestJWT(now time.Time) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenIssuer: "supervision.test",
	}).WithClock(func() time.Time { return now })
}

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestJWT(issued)

	tok, err := svc.Generate("supervisor@school.edu", "supervisor-school")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(30*24*time.Hour), tok.ExpiresAt)
	assert.NotEmpty(t, tok.ID)

	claims, err := svc.Validate(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "supervisor@school.edu", claims.Subject)
	assert.Equal(t, "supervisor-school", claims.Role)
	assert.Equal(t, tok.ID, claims.ID)
}

func TestValidate_ExpiresAfterThirtyDays(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	tok, err := newTestJWT(issued).Generate("a@b.edu", "student")
	require.NoError(t, err)

	_, err = newTestJWT(issued.Add(29 * 24 * time.Hour)).Validate(tok.Token)
	assert.NoError(t, err)

	_, err = newTestJWT(issued.Add(30*24*time.Hour + time.Minute)).Validate(tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestDefaultTTL_ThirtyDayBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	at := func(now time.Time) *JWTService {
		return NewJWTService(JWTConfig{SecretKey: "s"}).WithClock(func() time.Time { return now })
	}

	svc := at(issued)
	assert.Equal(t, 30*24*time.Hour, svc.TTL())

	tok, err := svc.Generate("a@b.edu", "student")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(720*time.Hour), tok.ExpiresAt)

	_, err = at(issued.Add(30*24*time.Hour - time.Second)).Validate(tok.Token)
	assert.NoError(t, err)

	_, err = at(issued.Add(30*24*time.Hour + time.Second)).Validate(tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := newTestJWT(now).Generate("a@b.edu", "student")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", TokenIssuer: "supervision.test"}).
		WithClock(func() time.Time { return now })
	_, err = other.Validate(tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestJWT(time.Now())
	for _, in := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := svc.Validate(in)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, "input %q", in)
	}
}

func TestGenerate_EmptySubject(t *testing.T) {
	t.Parallel()

	_, err := newTestJWT(time.Now()).Generate("", "student")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExpiryOf(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestJWT(issued)
	tok, err := svc.Generate("a@b.edu", "ilo")
	require.NoError(t, err)

	exp, ok := svc.ExpiryOf(tok.Token)
	require.True(t, ok)
	assert.True(t, exp.Equal(tok.ExpiresAt))

	_, ok = svc.ExpiryOf("garbage")
	assert.False(t, ok)
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"abc.def.ghi", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
