package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/middleware"
	"hela9_backend/internal/services"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

const forgotMessage = "If an account exists for this email, a password reset code has been sent."

// RateLimitFunc возвращает ограничитель попыток для именованной точки входа.
type RateLimitFunc func(scope string) gin.HandlerFunc

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	rateLimit   RateLimitFunc
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, rateLimit RateLimitFunc) *AuthHandler {
	if rateLimit == nil {
		rateLimit = func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } }
	}
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		rateLimit:   rateLimit,
	}
}

// RegisterRoutes регистрирует все маршруты для аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup/client", h.SignupClient)
		auth.POST("/signup/stylist", h.SignupStylist)
		auth.POST("/confirm", h.rateLimit("confirm"), middleware.RequireAuth(), h.Confirm)
		auth.POST("/confirm/resend", middleware.RequireAuth(), h.ResendConfirmation)
		auth.POST("/login", h.rateLimit("login"), h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot", h.rateLimit("forgot"), h.Forgot)
		auth.POST("/verify", h.rateLimit("verify"), h.Verify)
		auth.POST("/reset", h.Reset)
	}
	rg.GET("/me", middleware.RequireAuth(), h.Me)
}

func (h *AuthHandler) SignupClient(c *gin.Context) {
	var req dto.SignupClientRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.SignupClient(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.saveSession(c, h.sessions.Login(c.Writer, c.Request, resp.User.ID, string(resp.User.Role))) {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignupStylist - multipart: поля профиля и необязательный payment_proof.
func (h *AuthHandler) SignupStylist(c *gin.Context) {
	var req dto.SignupStylistRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	proof, closeProof, ok := h.FormFile(c, "payment_proof")
	if !ok {
		return
	}
	defer closeProof()

	resp, err := h.authService.SignupStylist(c.Request.Context(), h.GetDB(c), &req, proof)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.saveSession(c, h.sessions.Login(c.Writer, c.Request, resp.User.ID, string(resp.User.Role))) {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, _ := h.GetAndAuthorizeUserID(c)

	resp, err := h.authService.Confirm(c.Request.Context(), h.GetDB(c), userID, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	if err := h.authService.ResendConfirmation(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "A new confirmation code has been sent to your email."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Неподтвержденный пользователь тоже получает сессию, чтобы ввести код.
	if !h.saveSession(c, h.sessions.Login(c.Writer, c.Request, resp.User.ID, string(resp.User.Role))) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if !h.saveSession(c, h.sessions.Logout(c.Writer, c.Request)) {
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully."})
}

func (h *AuthHandler) Forgot(c *gin.Context) {
	var req dto.ForgotRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	found, err := h.authService.Forgot(c.Request.Context(), h.GetDB(c), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if found {
		err = h.sessions.StartReset(c.Writer, c.Request, req.Email)
	} else {
		err = h.sessions.ClearReset(c.Writer, c.Request)
	}
	if !h.saveSession(c, err) {
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: forgotMessage})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	sess := middleware.GetSession(c)
	if sess.ResetEmail == "" {
		h.HandleServiceError(c, apperrors.ErrResetSessionExpired)
		return
	}

	if err := h.authService.VerifyResetCode(c.Request.Context(), h.GetDB(c), sess.ResetEmail, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.saveSession(c, h.sessions.AllowReset(c.Writer, c.Request)) {
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Code verified. You can now reset your password."})
}

func (h *AuthHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	sess := middleware.GetSession(c)
	if sess.ResetEmail == "" || !sess.ResetAllowed {
		_ = h.sessions.ClearReset(c.Writer, c.Request)
		h.HandleServiceError(c, apperrors.ErrResetSessionExpired)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), sess.ResetEmail, &req)
	if err != nil {
		// После ошибки ввода (400) флаги остаются, чтобы повторить ввод.
		if apperrors.StatusCode(err) != http.StatusBadRequest {
			_ = h.sessions.ClearReset(c.Writer, c.Request)
		}
		h.HandleServiceError(c, err)
		return
	}
	if !h.saveSession(c, h.sessions.ClearReset(c.Writer, c.Request)) {
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully. You can now log in."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := h.GetAndAuthorizeUserID(c)
	resp, err := h.authService.Me(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
