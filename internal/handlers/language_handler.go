package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/i18n"
	"hela9_backend/internal/middleware"
	"hela9_backend/internal/services"
	"hela9_backend/pkg/apperrors"
)

// LanguageHandler - выбор языка интерфейса и выдача переводов.
type LanguageHandler struct {
	*BaseHandler
	catalog     *i18n.Catalog
	authService services.AuthService
}

func NewLanguageHandler(base *BaseHandler, catalog *i18n.Catalog, authService services.AuthService) *LanguageHandler {
	return &LanguageHandler{BaseHandler: base, catalog: catalog, authService: authService}
}

func (h *LanguageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/language/:code", h.SetLanguage)
	rg.GET("/translations", h.Translations)
}

func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	lang := strings.ToLower(c.Param("code"))
	if !h.catalog.Supports(lang) {
		h.HandleServiceError(c, apperrors.ErrUnsupportedLanguage)
		return
	}
	if !h.saveSession(c, h.sessions.SetLanguage(c.Writer, c.Request, lang)) {
		return
	}
	if err := h.authService.UpdateLanguage(c.Request.Context(), h.GetDB(c), h.ViewerID(c), lang); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "messages": h.catalog.Messages(lang)})
}

func (h *LanguageHandler) Translations(c *gin.Context) {
	lang := h.catalog.Resolve(middleware.GetSession(c).Language)
	c.JSON(http.StatusOK, gin.H{
		"language":  lang,
		"languages": h.catalog.Languages(),
		"messages":  h.catalog.Messages(lang),
	})
}
