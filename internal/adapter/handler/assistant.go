package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	assistantDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/assistant"
	"github.com/meetwiselabs/meetwise/internal/adapter/presenter"
	"github.com/meetwiselabs/meetwise/internal/usecase/assistant"
)

// Assistant handles agenda and summary HTTP requests
type Assistant struct {
	service *assistant.Service
	logger  *zap.Logger
}

// NewAssistant creates a new assistant handler
func NewAssistant(service *assistant.Service, logger *zap.Logger) *Assistant {
	return &Assistant{
		service: service,
		logger:  logger,
	}
}

// GenerateAgenda drafts an agenda for a meeting
// POST /v1/agenda/generate
func (h *Assistant) GenerateAgenda(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req assistantDTO.GenerateAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agenda, err := h.service.GenerateAgenda(c.Request().Context(), userID, assistant.GenerateAgendaInput{
		MeetingID:       req.MeetingID,
		Title:           req.Title,
		Context:         req.Context,
		DurationMinutes: req.DurationMinutes,
		Attendees:       req.Attendees,
	})
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, assistantDTO.AgendaResponse{Agenda: agenda})
}

// SaveAgenda stores a caller-provided agenda on a meeting
// POST /v1/agenda/save
func (h *Assistant) SaveAgenda(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req assistantDTO.SaveAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meeting, err := h.service.SaveAgenda(c.Request().Context(), userID, req.MeetingID, req.Agenda)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(meeting))
}

// GenerateSummary summarizes a meeting transcript
// POST /v1/summaries/generate
func (h *Assistant) GenerateSummary(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req assistantDTO.GenerateSummaryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	summary, _, err := h.service.GenerateSummary(c.Request().Context(), userID, req.MeetingID, req.Transcript)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToSummaryResponse(summary))
}

// ListSummaries lists the user's summaries
// GET /v1/summaries?meeting_id=...
func (h *Assistant) ListSummaries(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var meetingID *uuid.UUID
	if raw := c.QueryParam("meeting_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid meeting_id")
		}
		meetingID = &id
	}

	summaries, err := h.service.ListSummaries(c.Request().Context(), userID, meetingID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, assistantDTO.ListSummariesResponse{
		Summaries: presenter.ToSummaryResponses(summaries),
		Count:     len(summaries),
	})
}

// GetSummary retrieves one summary
// GET /v1/summaries/:id
func (h *Assistant) GetSummary(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.service.GetSummary(c.Request().Context(), id, userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSummaryResponse(summary))
}
