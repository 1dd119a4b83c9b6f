// Package models defines the persistent entities of the bug tracker and
// the closed vocabularies (role, issue status/priority/type) they use.
// Enum values are wire-visible and must round-trip exactly as strings.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Exactly one role per user,
// no hierarchy.
type Role string

const (
	RolePM        Role = "PM"
	RoleDeveloper Role = "Developer"
	RoleDesigner  Role = "Designer"
)

// Valid reports whether r is one of the recognized roles. The switch is
// exhaustive: adding a role requires revisiting every call site that
// dispatches on Role.
func (r Role) Valid() bool {
	switch r {
	case RolePM, RoleDeveloper, RoleDesigner:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Email        string
	UserName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
