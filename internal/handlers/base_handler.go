package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/middleware"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/session"
	"hela9_backend/internal/validator"
	"hela9_backend/pkg/apperrors"
	"hela9_backend/pkg/contextkeys"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	sessions  *session.Manager
}

func NewBaseHandler(v *validator.Validator, sessions *session.Manager) *BaseHandler {
	return &BaseHandler{
		validator: v,
		sessions:  sessions,
	}
}

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 2. Привязка и валидация
// ============================================================================

// BindAndValidate_JSON принимает и JSON, и multipart/form (по Content-Type).
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 3. Ошибки
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 4. Сессия и файлы
// ============================================================================

// GetAndAuthorizeUserID - ID из сессии; пишет 401, если его нет.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: no user in session",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Login required"))
		return "", false
	}
	return userID, true
}

// ViewerID - ID из сессии или "" для анонимного запроса.
func (h *BaseHandler) ViewerID(c *gin.Context) string {
	return middleware.GetUserID(c)
}

// saveSession оборачивает ошибку записи cookie.
func (h *BaseHandler) saveSession(c *gin.Context, err error) bool {
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to save session", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}
	return true
}

// openFile превращает multipart-файл в dto.FileInput. Вызывающий закрывает файл.
func openFile(fh *multipart.FileHeader) (*dto.FileInput, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &dto.FileInput{Filename: fh.Filename, Size: fh.Size, Content: f}, f, nil
}

// FormFile - необязательный файл из поля формы. nil, если поле пустое.
func (h *BaseHandler) FormFile(c *gin.Context, field string) (*dto.FileInput, func(), bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, true
	}
	input, f, err := openFile(fh)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to open uploaded file", err, "field", field)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read uploaded file"))
		return nil, func() {}, false
	}
	return input, func() { _ = f.Close() }, true
}

// FormFiles - все файлы поля формы.
func (h *BaseHandler) FormFiles(c *gin.Context, field string) ([]*dto.FileInput, func(), bool) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, closeAll, true
	}
	inputs := make([]*dto.FileInput, 0, len(form.File[field]))
	for _, fh := range form.File[field] {
		input, f, err := openFile(fh)
		if err != nil {
			closeAll()
			logger.CtxWithError(c.Request.Context(), "Failed to open uploaded file", err, "field", field)
			apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read uploaded file"))
			return nil, func() {}, false
		}
		files = append(files, f)
		inputs = append(inputs, input)
	}
	return inputs, closeAll, true
}
