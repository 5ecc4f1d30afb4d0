package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/models"
	"hela9_backend/internal/services"
	"hela9_backend/internal/services/dto"
)

type ReservationHandler struct {
	*BaseHandler
	reservationService services.ReservationService
}

func NewReservationHandler(base *BaseHandler, reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{BaseHandler: base, reservationService: reservationService}
}

func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reserve", middleware.RequireRoles(models.UserRoleClient), h.Reserve)
	rg.GET("/stylist/:id/reservations", middleware.RequireRoles(models.UserRoleStylist), h.ListForStylist)
	rg.PUT("/reservations/:id/status", middleware.RequireRoles(models.UserRoleStylist), h.UpdateStatus)
}

func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.reservationService.Reserve(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReservationHandler) ListForStylist(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	items, err := h.reservationService.ListForStylist(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": items})
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var req dto.ReservationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.reservationService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
