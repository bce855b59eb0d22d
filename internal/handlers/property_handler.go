package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propel_backend/internal/config"
	"propel_backend/internal/middleware"
	"propel_backend/internal/services"
	"propel_backend/internal/services/dto"
	"propel_backend/internal/storage"
	"propel_backend/pkg/apperrors"
)

// Лимит размера одной фотографии инспекции
const maxUploadSize = 10 << 20 // 10 MiB

// PropertyHandler - записи об инспекциях: CRUD, загрузка фото, отчеты
type PropertyHandler struct {
	*BaseHandler
	cfg             *config.Config
	propertyService services.PropertyService
	reportService   services.ReportService
	storage         storage.Storage
}

func NewPropertyHandler(
	base *BaseHandler,
	cfg *config.Config,
	propertyService services.PropertyService,
	reportService services.ReportService,
	store storage.Storage,
) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		cfg:             cfg,
		propertyService: propertyService,
		reportService:   reportService,
		storage:         store,
	}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	properties.Use(middleware.AuthMiddleware(h.cfg.JWT.Secret))
	{
		properties.GET("", h.GetAll)
		properties.POST("", h.Create)
		properties.GET("/:id", h.GetByID)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)
		properties.GET("/user/:id", h.GetByAccount)
		properties.POST("/:id/report", h.SendReport)
		properties.POST("/upload", h.Upload)
	}
}

func (h *PropertyHandler) GetAll(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	properties, err := h.propertyService.GetAll(db, principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *PropertyHandler) GetByID(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	property, err := h.propertyService.GetByID(db, c.Param("id"), principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) GetByAccount(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	properties, err := h.propertyService.GetByAccountID(db, c.Param("id"), principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.PropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	property, err := h.propertyService.Create(db, &req, principal.AccountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req dto.PropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	property, err := h.propertyService.Update(db, c.Param("id"), &req, principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.propertyService.Delete(db, c.Param("id"), principal); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *PropertyHandler) SendReport(c *gin.Context) {
	var req dto.SendReportRequest
	// Пустое тело допустимо: отчет уходит владельцу записи
	_ = c.ShouldBind(&req)

	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.reportService.SendReport(db, c.Param("id"), req.Email, principal); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent"})
}

// Upload принимает одну фотографию (multipart-поле "file") и возвращает
// ее публичный URL для подстановки в запись об инспекции
func (h *PropertyHandler) Upload(c *gin.Context) {
	if _, ok := h.GetPrincipal(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing 'file' form field"))
		return
	}

	if fileHeader.Size > maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	path := fmt.Sprintf("properties/%s/%s%s",
		time.Now().UTC().Format("2006-01"), uuid.NewString(), ext)

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storage.Save(c.Request.Context(), path, file, contentType); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: h.storage.GetURL(path)})
}
