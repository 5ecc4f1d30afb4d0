package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/services"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", middleware.RequireAuth(), h.Get)
}

func (h *DashboardHandler) Get(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.dashboardService.Get(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
