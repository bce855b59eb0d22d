package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RenderDefaults(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render("verification", TemplateData{"VerifyURL": "http://localhost:4000/accounts/verify-email/abc"})
	require.NoError(t, err)
	assert.Contains(t, body, "http://localhost:4000/accounts/verify-email/abc")

	body, err = tm.Render("password_reset", TemplateData{"ResetURL": "http://localhost:4000/accounts/reset-password?token=xyz"})
	require.NoError(t, err)
	assert.Contains(t, body, "reset-password?token=xyz")

	body, err = tm.Render("report", TemplateData{"PropertyAddress": "12 Baker Street"})
	require.NoError(t, err)
	assert.Contains(t, body, "12 Baker Street")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("does-not-exist", nil)
	assert.Error(t, err)
}
