package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propel_backend/internal/models"
)

func TestCanAccess_Owner(t *testing.T) {
	p := Principal{AccountID: "acc-1", Role: models.RoleUser}

	assert.True(t, CanAccess(p, "acc-1"))
	assert.False(t, CanAccess(p, "acc-2"))
}

func TestCanAccess_Admin(t *testing.T) {
	p := Principal{AccountID: "admin-1", Role: models.RoleAdmin}

	assert.True(t, CanAccess(p, "admin-1"))
	assert.True(t, CanAccess(p, "someone-else"))
}

func TestCanAccess_EmptyPrincipal(t *testing.T) {
	p := Principal{}

	assert.False(t, CanAccess(p, ""))
	assert.False(t, CanAccess(p, "acc-1"))
}
