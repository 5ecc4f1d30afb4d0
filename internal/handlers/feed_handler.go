package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/models"
	"hela9_backend/internal/services"
	"hela9_backend/internal/services/dto"
)

// FeedHandler - публикации, лайки, комментарии и подписки.
type FeedHandler struct {
	*BaseHandler
	feedService         services.FeedService
	subscriptionService services.SubscriptionService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService, subscriptionService services.SubscriptionService) *FeedHandler {
	return &FeedHandler{
		BaseHandler:         base,
		feedService:         feedService,
		subscriptionService: subscriptionService,
	}
}

func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	publications := rg.Group("/publications", middleware.RequireAuth())
	{
		publications.POST("/with_images", middleware.RequireRoles(models.UserRoleStylist), h.CreatePublication)
		publications.POST("/:id/like", h.Like)
		publications.DELETE("/:id/like", h.Unlike)
		publications.POST("/:id/comments", h.AddComment)
	}
	rg.DELETE("/comments/:id", middleware.RequireAuth(), h.DeleteComment)

	clientOnly := middleware.RequireRoles(models.UserRoleClient)
	rg.POST("/stylist/:id/subscribe", clientOnly, h.Subscribe)
	rg.DELETE("/stylist/:id/subscribe", clientOnly, h.Unsubscribe)
}

// CreatePublication - multipart: text и pub_images.
func (h *FeedHandler) CreatePublication(c *gin.Context) {
	var req dto.PublicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	images, closeImages, ok := h.FormFiles(c, "pub_images")
	if !ok {
		return
	}
	defer closeImages()
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.feedService.CreatePublication(c.Request.Context(), h.GetDB(c), userID, &req, images)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedHandler) Like(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.feedService.Like(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Unlike(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.feedService.Unlike(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// commentForm принимает comment_text (форма) или text (JSON).
type commentForm struct {
	CommentText string `form:"comment_text" json:"comment_text"`
	Text        string `form:"text" json:"text"`
}

func (h *FeedHandler) AddComment(c *gin.Context) {
	var req commentForm
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	text := req.CommentText
	if text == "" {
		text = req.Text
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.feedService.AddComment(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedHandler) DeleteComment(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	if err := h.feedService.DeleteComment(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comment deleted"})
}

func (h *FeedHandler) Subscribe(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.subscriptionService.Subscribe(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Unsubscribe(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.subscriptionService.Unsubscribe(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
