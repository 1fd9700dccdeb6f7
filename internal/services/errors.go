package services

import (
	"errors"
	"strings"
)

// Sentinel errors for the conditions handlers map to HTTP statuses.
var (
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("not authorized")
	ErrNotFound            = errors.New("not found")
	ErrCollectionNameTaken = errors.New("collection name already taken")
	ErrDuplicateLaunch     = errors.New("launch already in collection")
)

// isUniqueViolation reports whether a persistence error came from a unique
// constraint. Driver messages differ (sqlite vs postgres), so this matches on
// the common substrings.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
