package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/models"
	"hela9_backend/internal/services"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

// CatalogHandler - услуги, меню и фото стилиста.
type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coiffeur := rg.Group("/coiffeur", middleware.RequireRoles(models.UserRoleStylist))
	{
		coiffeur.POST("/services", h.AddService)
		coiffeur.PUT("/services/:id", h.UpdateService)
		coiffeur.DELETE("/services/:id", h.DeleteService)

		coiffeur.POST("/menu", h.AddMenuItem)
		coiffeur.PUT("/menu/:id", h.UpdateMenuItem)
		coiffeur.DELETE("/menu/:id", h.DeleteMenuItem)

		coiffeur.POST("/photos", h.AddPhoto)
		coiffeur.DELETE("/photos/:id", h.DeletePhoto)
	}
}

func (h *CatalogHandler) AddService(c *gin.Context) {
	var req dto.ServiceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.catalogService.AddService(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req dto.UpdateServiceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.catalogService.UpdateService(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	if err := h.catalogService.DeleteService(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Service deleted successfully."})
}

func (h *CatalogHandler) AddMenuItem(c *gin.Context) {
	var req dto.MenuItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.catalogService.AddMenuItem(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.catalogService.UpdateMenuItem(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	if err := h.catalogService.DeleteMenuItem(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Menu item deleted successfully."})
}

// AddPhoto - multipart, поле photo.
func (h *CatalogHandler) AddPhoto(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	file, closeFile, ok := h.FormFile(c, "photo")
	if !ok {
		return
	}
	defer closeFile()
	if file == nil {
		h.HandleServiceError(c, apperrors.ValidationError(map[string]string{"photo": "This field is required"}))
		return
	}

	resp, err := h.catalogService.AddPhoto(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) DeletePhoto(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	if err := h.catalogService.DeletePhoto(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Photo deleted successfully."})
}
