package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argonPrefix  = "argon2id$"
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
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

// HashPassword is the legacy HMAC-SHA256 hash keyed by the JWT secret. It is
// only used to verify accounts created before argon2 and is upgraded on the
// next successful login.
func HashPassword(password string) (hashedPassword string) {
	h := hmac.New(sha256.New, GetJWTSecretByte())
	h.Write([]byte(password))
	hashedPassword = hex.EncodeToString(h.Sum(nil))
	return
}

// GenerateSalt returns a random hex encoded salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPasswordArgon2 hashes password with argon2id and the given salt.
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("salt cannot be empty")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix + base64.RawStdEncoding.EncodeToString(key), nil
}

// IsArgon2Hash reports whether stored was produced by HashPasswordArgon2.
func IsArgon2Hash(stored string) bool {
	return strings.HasPrefix(stored, argonPrefix)
}

// VerifyPassword compares plain against the stored hash in constant time,
// accepting both argon2 and legacy hashes.
func VerifyPassword(plain, stored, salt string) (bool, error) {
	var computed string
	if IsArgon2Hash(stored) {
		h, err := HashPasswordArgon2(plain, salt)
		if err != nil {
			return false, err
		}
		computed = h
	} else {
		computed = HashPassword(plain)
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1, nil
}

// SetJWTSecret updates the secret used for token signing and legacy password
// hashing. Safe for concurrent use.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
