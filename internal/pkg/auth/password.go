package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost used for application key hashes.
const BcryptCost = 12

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// Argon2Params are the argon2id tuning parameters encoded into every hash.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params follows the OWASP minimum for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:  19 * 1024,
	Time:    2,
	Threads: 1,
	SaltLen: 16,
	KeyLen:  32,
}

const argon2Prefix = "$argon2id$"

// HashPassword hashes a password with argon2id using DefaultArgon2Params.
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultArgon2Params)
}

// HashPasswordWithParams hashes a password with argon2id and returns the PHC encoded string.
func HashPasswordWithParams(password string, p Argon2Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// CheckPassword verifies a password against an argon2id hash. Hashes written by
// the previous bcrypt scheme are still accepted so existing accounts keep working.
func CheckPassword(hashedPassword, password string) bool {
	switch {
	case strings.HasPrefix(hashedPassword, argon2Prefix):
		ok, err := compareArgon2(hashedPassword, password)
		return err == nil && ok
	case isBcryptHash(hashedPassword):
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
	default:
		return false
	}
}

// NeedsRehash reports whether a stored hash should be replaced by a fresh argon2id hash.
func NeedsRehash(hashedPassword string) bool {
	return !strings.HasPrefix(hashedPassword, argon2Prefix)
}

func compareArgon2(encoded, password string) (bool, error) {
	// $argon2id$v=19$m=...,t=...,p=...$salt$key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func isBcryptHash(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}

// HashAppKey hashes an application key for storage.
func HashAppKey(appKey string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(appKey), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckAppKey compares an application key with its stored hash.
func CheckAppKey(hashedKey, appKey string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedKey), []byte(appKey)) == nil
}
