package handlers

import (
	"net/http"

	"propel_backend/internal/config"
	"propel_backend/internal/middleware"
	"propel_backend/internal/services"
	"propel_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AccountHandler - администрирование учетных записей
type AccountHandler struct {
	*BaseHandler
	cfg            *config.Config
	accountService services.AccountService
}

func NewAccountHandler(base *BaseHandler, cfg *config.Config, accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    base,
		cfg:            cfg,
		accountService: accountService,
	}
}

func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	accounts.Use(middleware.AuthMiddleware(h.cfg.JWT.Secret))
	{
		accounts.GET("", middleware.AdminMiddleware(), h.GetAll)
		accounts.POST("", middleware.AdminMiddleware(), h.Create)
		accounts.GET("/:id", h.GetByID)
		accounts.PUT("/:id", h.Update)
		accounts.DELETE("/:id", h.Delete)
		accounts.GET("/approve/:id", middleware.AdminMiddleware(), h.Approve)
		accounts.GET("/reject/:id", middleware.AdminMiddleware(), h.Reject)
	}
}

func (h *AccountHandler) GetAll(c *gin.Context) {
	db := h.GetDB(c)

	accounts, err := h.accountService.GetAll(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) GetByID(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	account, err := h.accountService.GetByID(db, c.Param("id"), principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	account, err := h.accountService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	account, err := h.accountService.Update(db, c.Param("id"), &req, principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.accountService.Delete(db, c.Param("id"), principal); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *AccountHandler) Approve(c *gin.Context) {
	db := h.GetDB(c)

	account, err := h.accountService.Approve(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Reject(c *gin.Context) {
	db := h.GetDB(c)

	account, err := h.accountService.Reject(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
