package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound оборачивает ошибку репозитория в 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists оборачивает ошибку уникальности в 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrStorage - сбой файлового хранилища, клиенту отдается общее сообщение.
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Failed to store file", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyRegistered = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered.",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password.",
	http.StatusUnauthorized,
)

var ErrAccountNotConfirmed = New(
	CodeNotConfirmed,
	"auth",
	"Account not confirmed. Please enter the 6-digit code sent to your email.",
	http.StatusForbidden,
)

var ErrAlreadyConfirmed = New(
	CodeInvalidOperation,
	"auth",
	"Account already confirmed.",
	http.StatusBadRequest,
)

var ErrInvalidConfirmationCode = New(
	CodeInvalidCode,
	"auth",
	"Invalid or incorrect confirmation code.",
	http.StatusBadRequest,
)

var ErrInvalidResetCode = New(
	CodeInvalidCode,
	"auth",
	"Invalid reset code.",
	http.StatusBadRequest,
)

var ErrResetSessionExpired = New(
	CodeForbidden,
	"auth",
	"Password reset session expired. Please start again.",
	http.StatusForbidden,
)

var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"auth",
	"Passwords do not match.",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - роль не подходит для операции.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"You are not allowed to modify this resource.",
	http.StatusForbidden,
)

var ErrTooManyAttempts = New(
	CodeLimitExceeded,
	"auth",
	"Too many attempts. Please try again later.",
	http.StatusTooManyRequests,
)

// --- Stylist profile ---

var ErrStylistNotFound = New(
	CodeNotFound,
	"stylist",
	"Stylist not found.",
	http.StatusNotFound,
)

var ErrProfileNotActive = New(
	CodeForbidden,
	"stylist",
	"This stylist profile is not active yet.",
	http.StatusForbidden,
)

var ErrStylistNotPendingActivation = New(
	CodeInvalidStatus,
	"stylist",
	"Stylist is not pending activation.",
	http.StatusConflict,
)

// --- Booking ---

var ErrServiceNotOfStylist = New(
	CodeValidationFailed,
	"reservation",
	"Selected service does not belong to this stylist.",
	http.StatusBadRequest,
)

var ErrInvalidReservationStatus = New(
	CodeInvalidStatus,
	"reservation",
	"Invalid reservation status.",
	http.StatusBadRequest,
)

// --- Feed ---

var ErrCommentEmpty = New(
	CodeValidationFailed,
	"feed",
	"Comment cannot be empty.",
	http.StatusBadRequest,
)

var ErrCommentTooLong = New(
	CodeValidationFailed,
	"feed",
	"Comment cannot exceed 250 characters.",
	http.StatusBadRequest,
)

var ErrEmptyPublication = New(
	CodeValidationFailed,
	"feed",
	"A publication needs text or at least one image.",
	http.StatusBadRequest,
)

// --- Deplacement (bidding) ---

var ErrInvalidDateTime = New(
	CodeValidationFailed,
	"deplacement",
	"Invalid date or time format. Use YYYY-MM-DD and HH:MM.",
	http.StatusBadRequest,
)

var ErrNotMobileStylist = New(
	CodeForbidden,
	"deplacement",
	"Only mobile stylists can submit proposals.",
	http.StatusForbidden,
)

var ErrRequestNotOpen = New(
	CodeNotFound,
	"deplacement",
	"Request not found or no longer open.",
	http.StatusNotFound,
)

var ErrProposalAlreadySubmitted = New(
	CodeAlreadyExists,
	"deplacement",
	"You have already submitted a proposal for this request.",
	http.StatusConflict,
)

var ErrProposalNotFound = New(
	CodeNotFound,
	"deplacement",
	"Proposal not found or already handled.",
	http.StatusNotFound,
)

var ErrInvalidPrice = New(
	CodeValidationFailed,
	"deplacement",
	"Price must be a positive number.",
	http.StatusBadRequest,
)

// --- Uploads ---

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"Invalid file type. Allowed: png, jpg, jpeg.",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// --- i18n ---

var ErrUnsupportedLanguage = New(
	CodeValidationFailed,
	"i18n",
	"Unsupported language.",
	http.StatusBadRequest,
)
