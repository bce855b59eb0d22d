package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propel_backend/internal/models"
	"propel_backend/test/helpers"
)

func TestAccounts_GetAllRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	_, userJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})

	// Без токена
	res, _ := ts.SendRequest(t, http.MethodGet, "/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Обычный пользователь
	res, _ = ts.SendRequest(t, http.MethodGet, "/accounts", userJWT, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Админ видит список, без хешей паролей
	res, body := ts.SendRequest(t, http.MethodGet, "/accounts", adminJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.NotContains(t, body, "passwordHash")

	var accounts []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &accounts))
	assert.NotEmpty(t, accounts)
}

func TestAccounts_GetByIDOwnership(t *testing.T) {
	ts := GetTestServer(t)
	owner, ownerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, strangerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})

	// Свой аккаунт
	res, body := ts.SendRequest(t, http.MethodGet, "/accounts/"+owner.ID, ownerJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, owner.Email)

	// Чужой аккаунт обычному пользователю недоступен
	res, _ = ts.SendRequest(t, http.MethodGet, "/accounts/"+owner.ID, strangerJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Админ видит любой
	res, _ = ts.SendRequest(t, http.MethodGet, "/accounts/"+owner.ID, adminJWT, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAccounts_AdminCreate(t *testing.T) {
	ts := GetTestServer(t)
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})
	email := helpers.UniqueEmail("admin-created")

	res, body := ts.SendRequest(t, http.MethodPost, "/accounts", adminJWT, map[string]interface{}{
		"firstName":       "Created",
		"lastName":        "ByAdmin",
		"email":           email,
		"password":        helpers.DefaultPassword,
		"confirmPassword": helpers.DefaultPassword,
		"role":            "User",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Созданный админом аккаунт сразу верифицирован и одобрен
	var created models.Account
	require.NoError(t, ts.DB.Where("email = ?", models.NormalizeEmail(email)).First(&created).Error)
	assert.NotNil(t, created.Verified)
	assert.True(t, created.Status)

	// Занятый email - конфликт, здесь скрывать нечего: endpoint админский
	res, body = ts.SendRequest(t, http.MethodPost, "/accounts", adminJWT, map[string]interface{}{
		"firstName":       "Created",
		"lastName":        "Again",
		"email":           email,
		"password":        helpers.DefaultPassword,
		"confirmPassword": helpers.DefaultPassword,
		"role":            "User",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	// Роль вне словаря отклоняется валидатором
	res, _ = ts.SendRequest(t, http.MethodPost, "/accounts", adminJWT, map[string]interface{}{
		"firstName":       "Bad",
		"lastName":        "Role",
		"email":           helpers.UniqueEmail("bad-role"),
		"password":        helpers.DefaultPassword,
		"confirmPassword": helpers.DefaultPassword,
		"role":            "Superuser",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAccounts_Update(t *testing.T) {
	ts := GetTestServer(t)
	owner, ownerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	// Свои данные менять можно
	res, body := ts.SendRequest(t, http.MethodPut, "/accounts/"+owner.ID, ownerJWT, map[string]interface{}{
		"firstName":    "Renamed",
		"company_name": "New Company Ltd",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Renamed")
	assert.Contains(t, body, "New Company Ltd")

	// Роль и статус себе поднять нельзя
	res, _ = ts.SendRequest(t, http.MethodPut, "/accounts/"+owner.ID, ownerJWT, map[string]interface{}{
		"role": "Admin",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Админ роль менять может
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})
	res, body = ts.SendRequest(t, http.MethodPut, "/accounts/"+owner.ID, adminJWT, map[string]interface{}{
		"role": "Admin",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"role":"Admin"`)

	// Смена email на занятый - конфликт
	other := ts.CreateAccount(t, helpers.AccountFixture{})
	res, _ = ts.SendRequest(t, http.MethodPut, "/accounts/"+owner.ID, adminJWT, map[string]interface{}{
		"email": other.Email,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestAccounts_ApproveAndReject(t *testing.T) {
	ts := GetTestServer(t)
	pending := ts.CreateAccount(t, helpers.AccountFixture{Pending: true})
	_, userJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})

	// Одобрение - только админское
	res, _ := ts.SendRequest(t, http.MethodGet, "/accounts/approve/"+pending.ID, userJWT, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/accounts/approve/"+pending.ID, adminJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":true`)

	// После одобрения логин работает
	res, _ = ts.SendRequest(t, http.MethodPost, "/accounts/authenticate", "", map[string]string{
		"email":    pending.Email,
		"password": helpers.DefaultPassword,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Отклонение возвращает аккаунт в pending
	res, body = ts.SendRequest(t, http.MethodGet, "/accounts/reject/"+pending.ID, adminJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":false`)

	res, _ = ts.SendRequest(t, http.MethodPost, "/accounts/authenticate", "", map[string]string{
		"email":    pending.Email,
		"password": helpers.DefaultPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Несуществующий id
	res, _ = ts.SendRequest(t, http.MethodGet, "/accounts/approve/00000000-0000-0000-0000-000000000000", adminJWT, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAccounts_Delete(t *testing.T) {
	ts := GetTestServer(t)
	victim, victimJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, strangerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	property := ts.CreateProperty(t, victim.ID, "1 Cascade Road")

	// Чужой аккаунт удалить нельзя
	res, _ := ts.SendRequest(t, http.MethodDelete, "/accounts/"+victim.ID, strangerJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodDelete, "/accounts/"+victim.ID, victimJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Account deleted successfully")

	// Аккаунт исчез вместе с инспекциями и токенами
	var count int64
	ts.DB.Model(&models.Account{}).Where("id = ?", victim.ID).Count(&count)
	assert.Zero(t, count)
	ts.DB.Model(&models.Property{}).Where("id = ?", property.ID).Count(&count)
	assert.Zero(t, count)
	ts.DB.Model(&models.RefreshToken{}).Where("account_id = ?", victim.ID).Count(&count)
	assert.Zero(t, count)
}
