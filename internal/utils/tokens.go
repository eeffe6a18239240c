package utils

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/crypto/bcrypt"
)

// GenerateSecureToken generates a cryptographically secure random token
// of the specified byte length and returns it as a URL-safe base64 string
func GenerateSecureToken(byteLength int) (string, error) {
	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// NewResourceID returns an origin-qualified opaque id such as "hub-3wDk...".
func NewResourceID(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return shortuuid.New()
	}
	return origin + "-" + shortuuid.New()
}

// HashPassword hashes a password using bcrypt for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plain password against a bcrypt hash in constant time
func VerifyPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
