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

// StylistHandler - поиск, карточка стилиста, профиль и модерация.
type StylistHandler struct {
	*BaseHandler
	stylistService services.StylistService
	reviewService  services.ReviewService
}

func NewStylistHandler(base *BaseHandler, stylistService services.StylistService, reviewService services.ReviewService) *StylistHandler {
	return &StylistHandler{
		BaseHandler:    base,
		stylistService: stylistService,
		reviewService:  reviewService,
	}
}

func (h *StylistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stylistOnly := middleware.RequireRoles(models.UserRoleStylist)

	stylists := rg.Group("/stylists")
	{
		stylists.GET("", h.Search)
		stylists.GET("/:id", h.GetProfile)
		stylists.PUT("/:id", stylistOnly, h.UpdateProfile)
		stylists.POST("/:id/comment", middleware.RequireRoles(models.UserRoleClient), h.AddReview)
	}

	rg.GET("/coiffeurs/nearby", h.Nearby)
	rg.GET("/coiffeurs/locations", h.Locations)
	rg.POST("/coiffeur/location", stylistOnly, h.UpdateLocation)
	rg.POST("/profile/upload_avatar", stylistOnly, h.UploadAvatar)

	admin := rg.Group("/admin/stylists", middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:id/approve", h.Approve)
		admin.POST("/:id/reject", h.Reject)
	}
}

func (h *StylistHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	cards, err := h.stylistService.Search(c.Request.Context(), h.GetDB(c), h.ViewerID(c), &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stylists": cards})
}

func (h *StylistHandler) GetProfile(c *gin.Context) {
	resp, err := h.stylistService.GetProfile(c.Request.Context(), h.GetDB(c), h.ViewerID(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StylistHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.stylistService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StylistHandler) AddReview(c *gin.Context) {
	var req dto.ReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.reviewService.AddReview(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StylistHandler) Nearby(c *gin.Context) {
	var q dto.NearbyQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	lat, lon := services.DefaultNearbyLat, services.DefaultNearbyLon
	if q.Lat != nil {
		lat = *q.Lat
	}
	if q.Lon != nil {
		lon = *q.Lon
	}

	out, err := h.stylistService.Nearby(c.Request.Context(), h.GetDB(c), lat, lon)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stylists": out})
}

func (h *StylistHandler) Locations(c *gin.Context) {
	out, err := h.stylistService.Locations(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (h *StylistHandler) UpdateLocation(c *gin.Context) {
	var req dto.LocationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	if err := h.stylistService.UpdateLocation(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Location updated successfully."})
}

func (h *StylistHandler) UploadAvatar(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	file, closeFile, ok := h.FormFile(c, "avatar_file")
	if !ok {
		return
	}
	defer closeFile()
	if file == nil {
		h.HandleServiceError(c, apperrors.ValidationError(map[string]string{"avatar_file": "This field is required"}))
		return
	}

	resp, err := h.stylistService.UploadAvatar(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StylistHandler) ListPending(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	out, err := h.stylistService.ListPending(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stylists": out})
}

func (h *StylistHandler) Approve(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.stylistService.Approve(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StylistHandler) Reject(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.stylistService.Reject(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
