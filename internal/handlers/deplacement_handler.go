package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/models"
	"hela9_backend/internal/services"
	"hela9_backend/internal/services/dto"
)

type DeplacementHandler struct {
	*BaseHandler
	deplacementService services.DeplacementService
}

func NewDeplacementHandler(base *BaseHandler, deplacementService services.DeplacementService) *DeplacementHandler {
	return &DeplacementHandler{BaseHandler: base, deplacementService: deplacementService}
}

func (h *DeplacementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deplacement := rg.Group("/deplacement")
	{
		deplacement.POST("/request/broadcast", middleware.RequireRoles(models.UserRoleClient), h.Broadcast)
		deplacement.POST("/propose/:request_id", middleware.RequireRoles(models.UserRoleStylist), h.Propose)
		deplacement.POST("/respond/:proposal_id", middleware.RequireRoles(models.UserRoleClient), h.Respond)
	}
}

func (h *DeplacementHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.deplacementService.Broadcast(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DeplacementHandler) Propose(c *gin.Context) {
	var req dto.ProposeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.deplacementService.Propose(c.Request.Context(), h.GetDB(c), userID, c.Param("request_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DeplacementHandler) Respond(c *gin.Context) {
	var req dto.RespondRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.deplacementService.Respond(c.Request.Context(), h.GetDB(c), userID, c.Param("proposal_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
