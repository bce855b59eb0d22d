package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,is-account-role"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:           "user@test.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "Admin",
	})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:           "not-an-email",
		Password:        "123",
		ConfirmPassword: "456",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Ключи - имена из json-тегов, не Go-поля
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Contains(t, vErr.Errors, "confirmPassword")
	assert.NotContains(t, vErr.Errors, "Email")
}

func TestValidate_AccountRoleRule(t *testing.T) {
	v := New()

	valid := &sampleRequest{
		Email:           "user@test.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "User",
	}
	assert.NoError(t, v.Validate(valid))

	invalid := *valid
	invalid.Role = "Superuser"
	err := v.Validate(&invalid)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "role")
}
