package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_MarshalJSON(t *testing.T) {
	appErr := Wrap(errors.New("driver: connection refused"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	// Внутренняя ошибка и HTTP-код не утекают в ответ
	assert.NotContains(t, string(raw), "connection refused")
	assert.NotContains(t, string(raw), "500")
	assert.Contains(t, string(raw), "INTERNAL_ERROR")
}

func TestAsAppError(t *testing.T) {
	wrapped := Wrap(ErrInvalidToken, CodeInternalError, "system", "oops", http.StatusInternalServerError)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeInternalError, appErr.Code)

	_, ok = AsAppError(errors.New("plain error"))
	assert.False(t, ok)
}

func TestHandleGinError_TokenReuseIsMasked(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/refresh-token", nil)

	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, NewTokenReuse("stolen-token-value"))

	// Клиент видит обычный invalid token, без следов детекции
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	assert.NotContains(t, w.Body.String(), "TOKEN_REUSE")
	assert.NotContains(t, w.Body.String(), "stolen-token-value")
}

func TestHandleGinError_UnknownErrorIsRedacted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/accounts", nil)

	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, errors.New("pq: table accounts does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidToken.HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrVerificationFailed.HTTPCode)
	assert.Equal(t, http.StatusNotFound, ErrAccountNotFound.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyTaken.HTTPCode)
}
