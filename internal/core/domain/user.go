package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicatePhone     = errors.New("phone number already in use")
	ErrInvalidRole        = errors.New("invalid role")

	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// RoleSet is the configured list of valid role identifiers, ordered from most
// to least privileged. The set is configuration data, not a compiled enum, so
// deployments can reconcile the historical four-role and three-role variants
// without a schema change.
type RoleSet []string

// ParseRoleSet builds a RoleSet from a comma-separated list, trimming blanks.
func ParseRoleSet(s string) RoleSet {
	parts := strings.Split(s, ",")
	set := make(RoleSet, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			set = append(set, r)
		}
	}
	return set
}

// Contains reports whether role is a member of the set.
func (rs RoleSet) Contains(role string) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Default returns the least-privileged role (the last entry). Registration
// payloads that omit the role get this one.
func (rs RoleSet) Default() string {
	if len(rs) == 0 {
		return ""
	}
	return rs[len(rs)-1]
}

// User models an authenticated actor. UserID is the opaque token subject,
// generated at creation and decoupled from the storage-internal document id.
// PasswordHash is never serialized outward.
type User struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	LastName     string    `json:"last_name" bson:"last_name"`
	FirstName    string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PhoneNumber  string    `json:"phone_number" bson:"phone_number"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	IsStaff      bool      `json:"is_staff" bson:"is_staff"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
