package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/meeting"
	"github.com/meetwiselabs/meetwise/internal/adapter/presenter"
	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(service *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// List retrieves the user's meetings
// GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	filters := repositories.MeetingFilters{
		UserID:      userID,
		FlaggedOnly: req.FlaggedOnly,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from timestamp")
		}
		filters.StartAfter = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to timestamp")
		}
		filters.StartBefore = &to
	}
	if req.Status != "" {
		status := entities.MeetingStatus(req.Status)
		filters.Status = &status
	}

	meetings, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, meetingDTO.ListMeetingsResponse{
		Meetings: presenter.ToMeetingResponses(meetings),
		Count:    len(meetings),
	})
}

// Get retrieves one meeting
// GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	m, err := h.service.Get(c.Request().Context(), id, userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// Flag creates a manual flag on a meeting
// POST /v1/meetings/:id/flags
func (h *Meeting) Flag(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req meetingDTO.FlagMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	flag, err := h.service.Flag(c.Request().Context(), userID, id,
		entities.IssueType(req.IssueType), req.Description, entities.Severity(req.Severity))
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToFlagResponse(flag))
}

// ResolveFlag marks a flag resolved
// PUT /v1/meetings/:id/flags/:flagId/resolve
func (h *Meeting) ResolveFlag(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	meetingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	flagID, err := pathUUID(c, "flagId")
	if err != nil {
		return err
	}

	flag, err := h.service.ResolveFlag(c.Request().Context(), userID, meetingID, flagID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToFlagResponse(flag))
}

// Analyze runs the quick analysis pass over the user's meetings
// POST /v1/meetings/analyze
func (h *Meeting) Analyze(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.Analyze(c.Request().Context(), userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToAnalysisResponse(result))
}

// AttendeeRecommendations suggests attendee changes for a meeting
// GET /v1/meetings/:id/attendee-recommendations
func (h *Meeting) AttendeeRecommendations(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	recommendations, err := h.service.AttendeeRecommendations(c.Request().Context(), userID, id)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
	})
}

// BulkCancel cancels a batch of meetings
// POST /v1/meetings/bulk-cancel
func (h *Meeting) BulkCancel(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req meetingDTO.BulkCancelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	results, err := h.service.BulkCancel(c.Request().Context(), userID, req.MeetingIDs)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": results,
	})
}
