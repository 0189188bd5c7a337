package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/filestore"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/service"
)

// Pinger is the liveness probe the health endpoint runs against the
// database.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Cases     *service.CaseService
	Analytics *service.AnalyticsService
	Files     filestore.Store
	DB        Pinger
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Permission failures never leak whether the case exists.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", ve.Fields)
	case errors.Is(err, service.ErrPermissionDenied):
		writeError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action", nil)
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	case errors.Is(err, service.ErrUnrecognizedRole):
		writeError(c, http.StatusForbidden, "ROLE_NOT_RECOGNIZED", "User role not recognized", nil)
	default:
		h.Logger.Error().Err(err).Msg("request failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Database error", err.Error())
	}
}
