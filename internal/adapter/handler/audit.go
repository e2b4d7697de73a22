package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/usecase/audit"
)

// Audit handles audit HTTP requests
type Audit struct {
	service *audit.Service
	logger  *zap.Logger
}

// NewAudit creates a new audit handler
func NewAudit(service *audit.Service, logger *zap.Logger) *Audit {
	return &Audit{
		service: service,
		logger:  logger,
	}
}

// Run runs a full audit over the user's meetings
// POST /v1/audit/run
func (h *Audit) Run(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	report, err := h.service.RunFullAudit(c.Request().Context(), userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, report)
}

// Suggestions scores upcoming meetings for cancellation
// GET /v1/audit/suggestions
func (h *Audit) Suggestions(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	candidates, err := h.service.SuggestCancellations(c.Request().Context(), userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": candidates,
		"count":       len(candidates),
	})
}
