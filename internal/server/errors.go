package server

import (
	"errors"
	"net/http"

	"github.com/abhisek/nckh/internal/assist"
	"github.com/abhisek/nckh/internal/llm"
)

// statusOf maps a tool error to the HTTP status of the response.
func statusOf(err error) int {
	var (
		apiErr      *llm.ErrAPI
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, assist.ErrEmptyQuery), errors.Is(err, assist.ErrInvalidStep):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		// Provider rejections pass their status through.
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 600 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	case errors.As(err, &unavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
