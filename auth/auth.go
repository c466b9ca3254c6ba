// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
)

// GenerateAdminKey creates an HMAC-based admin key bound to the current
// admin credentials. Changing the username or the password revokes it.
func GenerateAdminKey(username, passwordHash, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("admin:" + username + "\x00" + passwordHash))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key matches the current credentials
func ValidateAdminKey(username, passwordHash, adminKey, salt string) error {
	if username == "" || passwordHash == "" || adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(username, passwordHash, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates a random secure token for a voter session
func GenerateVoterToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateTokenFormat rejects values that GenerateVoterToken could not have produced
func ValidateTokenFormat(token string) error {
	if len(token) != 32 {
		return ErrInvalidToken
	}
	if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// HashPassword returns a bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// MatchCredentials compares a login attempt against the stored username and
// bcrypt hash. Both checks always run.
func MatchCredentials(wantUsername, passwordHash, username, password string) bool {
	userOK := hmac.Equal([]byte(wantUsername), []byte(username))
	passOK := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
	return userOK && passOK
}
