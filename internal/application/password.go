package application

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrMalformedPasswordHash is returned when a stored hash does not parse.
	ErrMalformedPasswordHash = errors.New("malformed password hash")
	// ErrUnsupportedHashVersion is returned when a stored hash was produced by
	// an argon2 version this build does not implement.
	ErrUnsupportedHashVersion = errors.New("unsupported password hash version")
)

// PasswordHashParams tunes the argon2id key derivation. The cost settings are
// encoded into every stored hash, so they can be raised later without
// invalidating existing accounts.
type PasswordHashParams struct {
	MemoryKiB uint32
	Passes    uint32
	Lanes     uint8
	SaltBytes uint32
	KeyBytes  uint32
}

// DefaultPasswordHashParams follows the RFC 9106 second recommended option
// (64 MiB, 3 passes).
var DefaultPasswordHashParams = PasswordHashParams{
	MemoryKiB: 64 * 1024,
	Passes:    3,
	Lanes:     2,
	SaltBytes: 16,
	KeyBytes:  32,
}

// CreatePasswordHash derives an argon2id hash of password and encodes it in
// the modular crypt form "$argon2id$v=19$m=...,t=...,p=...$salt$key".
func CreatePasswordHash(password string, params PasswordHashParams) (string, error) {
	salt := make([]byte, params.SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, params.Passes, params.MemoryKiB, params.Lanes, params.KeyBytes)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.MemoryKiB, params.Passes, params.Lanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword re-derives the key for password using the parameters encoded
// in hashedPassword and compares in constant time. A mismatch surfaces as
// ErrInvalidCredentials so callers need not distinguish it from a bad email.
func VerifyPassword(hashedPassword, password string) error {
	params, salt, key, err := decodePasswordHash(hashedPassword)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Passes, params.MemoryKiB, params.Lanes, params.KeyBytes)
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func decodePasswordHash(encoded string) (PasswordHashParams, []byte, []byte, error) {
	var params PasswordHashParams

	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return params, nil, nil, ErrMalformedPasswordHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrMalformedPasswordHash
	}
	if version != argon2.Version {
		return params, nil, nil, ErrUnsupportedHashVersion
	}

	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Passes, &params.Lanes); err != nil {
		return params, nil, nil, ErrMalformedPasswordHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return params, nil, nil, ErrMalformedPasswordHash
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return params, nil, nil, ErrMalformedPasswordHash
	}

	params.SaltBytes = uint32(len(salt))
	params.KeyBytes = uint32(len(key))
	return params, salt, key, nil
}
