package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http/middleware"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// @Summary Dashboard view for the caller
// @Tags analytics
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 403 {object} map[string]any
// @Router /api/dashboard [post]
func (h *Handler) Dashboard(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	out, err := h.Analytics.Dashboard(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Per-kind case statistics
// @Tags analytics
// @Produce json
// @Param kind path string false "case kind"
// @Success 200 {object} service.KindStats
// @Router /api/stats/types/{kind} [get]
func (h *Handler) KindStats(c *gin.Context) {
	kind := models.CaseKind(c.Param("kind"))
	if kind != "" && !models.ValidKind(kind) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown case type", string(kind))
		return
	}
	actor := middleware.ActorFrom(c)
	out, err := h.Analytics.KindStats(c.Request.Context(), actor, kind)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CaseStats(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	out, err := h.Analytics.CaseStats(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Case analytics report
// @Tags analytics
// @Produce json
// @Success 200 {object} service.AnalyticsReport
// @Router /api/analytics [get]
func (h *Handler) AnalyticsReport(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	out, err := h.Analytics.Analytics(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
