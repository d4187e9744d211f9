// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to the admin console (books, ads, users, feedback)
	RoleAdmin UserRole = "admin"

	// Default role for standard registered readers
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for future intermediate roles (e.g. moderator)
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Account Status

// AccountStatus represents the moderation state of an account.
type AccountStatus string

const (
	// StatusActive is the normal state for an account.
	StatusActive AccountStatus = "active"

	// StatusBanned accounts are rejected at the middleware boundary;
	// no handler ever runs for them.
	StatusBanned AccountStatus = "banned"
)
