package api

import (
	"errors"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrScanSuperseded), errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnavailable), errors.Is(err, service.ErrMediaStorageDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondWithServiceError aborts with the mapped status. Internal errors are
// logged and replaced by a generic message.
func respondWithServiceError(c *gin.Context, log *logger.Logger, err error, action string) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed", "action", action, "path", c.FullPath(), "error", err)
		abortWithError(c, code, "Failed to "+action+".")
		return
	}
	if code == http.StatusServiceUnavailable {
		log.Warn("dependency unavailable", "action", action, "error", err)
	}
	abortWithError(c, code, err.Error())
}
