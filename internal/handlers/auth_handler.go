package handlers

import (
	"net/http"

	"propel_backend/internal/config"
	"propel_backend/internal/logger"
	"propel_backend/internal/middleware"
	"propel_backend/internal/services"
	"propel_backend/internal/services/dto"
	"propel_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// refreshCookieName - имя HTTP-only cookie с refresh-токеном
const refreshCookieName = "refreshToken"

// AuthHandler - границы сессий: логин, ротация, отзыв, регистрация,
// верификация email и сброс пароля.
type AuthHandler struct {
	*BaseHandler
	cfg         *config.Config
	authService services.AuthService
	rateLimiter gin.HandlerFunc
}

func NewAuthHandler(base *BaseHandler, cfg *config.Config, authService services.AuthService, rateLimiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		cfg:         cfg,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации.
// Пути повторяют публичный контракт API: все под /accounts.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		if h.rateLimiter != nil {
			accounts.POST("/authenticate", h.rateLimiter, h.Authenticate)
		} else {
			accounts.POST("/authenticate", h.Authenticate)
		}
		accounts.POST("/refresh-token", h.RefreshToken)
		accounts.POST("/register", h.Register)
		accounts.GET("/verify-email/:token", h.VerifyEmail)
		accounts.GET("/forgot-password", h.ForgotPassword)
		accounts.POST("/validate-reset-token", h.ValidateResetToken)
		accounts.POST("/reset-password", h.ResetPassword)

		// Отзыв требует аутентификации: чужой токен может гасить только админ
		accounts.POST("/revoke-token", middleware.AuthMiddleware(h.cfg.JWT.Secret), h.RevokeToken)
	}
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthenticateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, refreshToken, err := h.authService.Authenticate(db, &req, c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}

	db := h.GetDB(c)

	response, newToken, err := h.authService.Rotate(db, token, c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, newToken)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) RevokeToken(c *gin.Context) {
	var req dto.RevokeTokenRequest
	// Тело опционально: при его отсутствии токен берется из cookie
	_ = c.ShouldBind(&req)

	token := req.Token
	if token == "" {
		token, _ = c.Cookie(refreshCookieName)
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token is required"})
		return
	}

	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.Revoke(db, token, c.ClientIP(), &principal); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	outcome, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	db := h.GetDB(c)

	if err := h.authService.VerifyEmail(db, token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification successful, you can now login",
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	// Провал скрываем: ответ не должен зависеть от существования email
	if err := h.authService.ForgotPassword(db, req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "Forgot-password request failed (hidden from client)",
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Please check your email for password reset instructions",
	})
}

func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	var req dto.ValidateResetTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ValidateResetToken(db, req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResetPassword(db, &req, c.ClientIP()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful, you can now login",
	})
}

// setRefreshCookie кладет refresh-токен в HTTP-only cookie.
// JS на клиенте токен не видит - это единственное место его хранения.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.RefreshTTLDays * 24 * 60 * 60
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, maxAge, "/", "", h.cfg.Server.Env == "production", true)
}
