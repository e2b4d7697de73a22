package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/usecase/dashboard"
)

// Dashboard handles dashboard HTTP requests
type Dashboard struct {
	service *dashboard.Service
	logger  *zap.Logger
}

// NewDashboard creates a new dashboard handler
func NewDashboard(service *dashboard.Service, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		service: service,
		logger:  logger,
	}
}

// Metrics computes the dashboard metrics for the requested range
// GET /v1/dashboard/metrics?time_range=week|month|quarter
func (h *Dashboard) Metrics(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	timeRange := dashboard.TimeRange(c.QueryParam("time_range"))

	metrics, err := h.service.Metrics(c.Request().Context(), userID, timeRange)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, metrics)
}

// WeeklyStats returns the weekly trend series
// GET /v1/dashboard/weekly-stats?weeks=N
func (h *Dashboard) WeeklyStats(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	weeks := 0
	if raw := c.QueryParam("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 52 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid weeks parameter")
		}
		weeks = n
	}

	trend, err := h.service.WeeklyStats(c.Request().Context(), userID, weeks)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, trend)
}
