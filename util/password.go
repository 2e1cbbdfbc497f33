package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	argonPrefix = "argon2id$"
)

var (
	jwtSecretValue = getEnv("JWTSECRET", "")
	jwtSecretByte  = []byte(jwtSecretValue)
	jwtMutex       sync.RWMutex
)

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// SetJWTSecret allows tests or runtime code to update the JWT signing secret.
// This function is thread-safe and can be called concurrently.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes in a thread-safe manner.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// GenerateSalt returns a random base64-encoded salt for password hashing.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPasswordArgon2 derives an Argon2id hash of the password with the given
// per-record salt. The result carries an identifying prefix so the scheme can
// be recognized during verification.
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("salt cannot be empty")
	}
	saltByte, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt encoding: %w", err)
	}
	key := argon2.IDKey([]byte(password), saltByte, argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix + base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword checks a plaintext password against a stored hash and salt
// using a constant-time comparison.
func VerifyPassword(password, hashed, salt string) (bool, error) {
	if !strings.HasPrefix(hashed, argonPrefix) {
		return false, fmt.Errorf("unrecognized password hash format")
	}
	computed, err := HashPasswordArgon2(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1, nil
}
