package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/adapter/dto/common"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/http/middleware"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

// statusFor maps usecase sentinel errors to HTTP status codes. Anything
// unmapped is an internal error.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrInvalidInput),
		stderrors.Is(err, errors.ErrInvalidIssueType),
		stderrors.Is(err, errors.ErrInvalidSeverity):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrUnauthorized),
		stderrors.Is(err, errors.ErrInvalidCredentials),
		stderrors.Is(err, errors.ErrTokenExpired),
		stderrors.Is(err, errors.ErrTokenInvalid),
		stderrors.Is(err, errors.ErrInvalidOAuthState):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case stderrors.Is(err, errors.ErrNotFound),
		stderrors.Is(err, errors.ErrUserNotFound),
		stderrors.Is(err, errors.ErrMeetingNotFound),
		stderrors.Is(err, errors.ErrFlagNotFound),
		stderrors.Is(err, errors.ErrSummaryNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrAlreadyExists),
		stderrors.Is(err, errors.ErrConflict),
		stderrors.Is(err, errors.ErrMeetingCancelled),
		stderrors.Is(err, errors.ErrFlagAlreadyResolved),
		stderrors.Is(err, errors.ErrAuditInProgress):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrCalendarNotConnected):
		return http.StatusPreconditionFailed
	case stderrors.Is(err, errors.ErrCalendarSyncFailed),
		stderrors.Is(err, errors.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the mapped error response and logs server-side failures
func handleError(logger *zap.Logger, c echo.Context, err error) error {
	status := statusFor(err)

	body := common.ErrorResponse{Error: err.Error()}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Request().Method),
			zap.Error(err),
		)
		// Internal details stay out of the response
		body = common.ErrorResponse{
			Error:   "internal server error",
			Message: "Something went wrong, please try again",
		}
	}

	return c.JSON(status, body)
}

// bindAndValidate binds the request body (or query) into v and validates it
func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pathUUID parses a path parameter as a UUID
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// authedUser pulls the authenticated user ID set by the auth middleware
func authedUser(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}
