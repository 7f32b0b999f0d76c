package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Data tidak ditemukan"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Permintaan tidak valid"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Terjadi kesalahan pada server"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Email atau password salah"}
	ErrInactiveAccount    = &AppError{Code: http.StatusForbidden, Message: "Akun tidak aktif"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Token tidak valid atau kedaluwarsa"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " tidak ditemukan",
	}
}

// NewConflictError creates a conflict error. Conflicts are retryable by
// re-issuing the same logical request.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// InsufficientStockDetails carries the data a client needs to show a
// meaningful out-of-stock message.
type InsufficientStockDetails struct {
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
}

// NewInsufficientStockError creates a stock-violation error carrying the
// product name and the quantity still available.
func NewInsufficientStockError(productName string, available int) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Stok %s tidak mencukupi. Tersedia: %d", productName, available),
		Details: InsufficientStockDetails{ProductName: productName, Available: available},
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsConflict reports whether an error is a retryable conflict
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusConflict
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
