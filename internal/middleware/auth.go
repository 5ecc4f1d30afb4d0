package middleware

import (
	"github.com/gin-gonic/gin"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"
	"hela9_backend/internal/session"
	"hela9_backend/pkg/apperrors"
)

const (
	ContextUserID   = "userID"
	ContextRole     = "role"
	ContextSession  = "session"
	ContextLanguage = "language"
)

// SessionMiddleware читает cookie-сессию для каждого запроса.
// Анонимный запрос проходит дальше с пустой сессией.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := sessions.Load(c.Request)
		c.Set(ContextSession, data)
		c.Set(ContextLanguage, data.Language)
		if data.Authenticated() {
			c.Set(ContextUserID, data.UserID)
			c.Set(ContextRole, models.UserRole(data.Role))
			ctx := logger.WithUserID(c.Request.Context(), data.UserID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireAuth - только для вошедших пользователей.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Login required"))
			return
		}
		c.Next()
	}
}

// RequireRoles - роль из сессии должна входить в список.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Login required"))
			return
		}
		if !roleSet[GetRole(c)] {
			logger.CtxWarn(c.Request.Context(), "Role check failed", "role", GetRole(c), "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func GetRole(c *gin.Context) models.UserRole {
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.UserRole)
	return r
}

// GetSession - данные сессии, положенные SessionMiddleware.
func GetSession(c *gin.Context) session.Data {
	v, _ := c.Get(ContextSession)
	data, _ := v.(session.Data)
	return data
}
