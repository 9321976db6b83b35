package http

import (
	"errors"
	"net/http"

	"multibagger-scanner/internal/scanner/service"

	"gorm.io/gorm"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
