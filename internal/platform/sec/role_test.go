// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvtphong/fabula/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy used by RequireRole.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"user_fails_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"unknown_fails_user", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestAuthClaims_IsBanned verifies the boundary banned check.
*/
func TestAuthClaims_IsBanned(t *testing.T) {
	banned := &sec.AuthClaims{Status: string(sec.StatusBanned)}
	active := &sec.AuthClaims{Status: string(sec.StatusActive)}
	empty := &sec.AuthClaims{}

	assert.True(t, banned.IsBanned())
	assert.False(t, active.IsBanned())
	assert.False(t, empty.IsBanned())
}
