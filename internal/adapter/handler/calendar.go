package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	calendarDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/calendar"
	"github.com/meetwiselabs/meetwise/internal/usecase/calendar"
)

// Calendar handles calendar sync HTTP requests
type Calendar struct {
	service *calendar.Service
	logger  *zap.Logger
}

// NewCalendar creates a new calendar handler
func NewCalendar(service *calendar.Service, logger *zap.Logger) *Calendar {
	return &Calendar{
		service: service,
		logger:  logger,
	}
}

// Sync pulls the user's calendar events into meetings
// POST /v1/calendar/sync
func (h *Calendar) Sync(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req calendarDTO.SyncRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Sync(c.Request().Context(), userID, req.LookbackDays, req.LookaheadDays)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, calendarDTO.SyncResponse{
		EventCount:   result.EventCount,
		SkippedCount: result.SkippedCount,
		Message:      "Calendar synced successfully",
	})
}
