package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/auth"
	"github.com/meetwiselabs/meetwise/internal/adapter/dto/common"
	"github.com/meetwiselabs/meetwise/internal/adapter/presenter"
	"github.com/meetwiselabs/meetwise/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	oauthService *auth.OAuthService
	logger       *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(oauthService *auth.OAuthService, logger *zap.Logger) *Auth {
	return &Auth{
		oauthService: oauthService,
		logger:       logger,
	}
}

// GoogleLogin starts the Google OAuth flow
// GET /v1/auth/google/login
func (h *Auth) GoogleLogin(c echo.Context) error {
	authURL, err := h.oauthService.GetGoogleAuthURL(c.Request().Context())
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback completes the OAuth flow
// GET /v1/auth/google/callback
func (h *Auth) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing code or state parameter")
	}

	result, err := h.oauthService.HandleGoogleCallback(c.Request().Context(), code, state)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToAuthResponse(result))
}

// RefreshToken issues a new access token
// POST /v1/auth/refresh
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authDTO.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.oauthService.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToRefreshTokenResponse(result))
}

// Logout clears the access token cookie. Tokens are stateless, so the
// client is expected to discard its copies as well.
// POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the current user's profile
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	user, err := h.oauthService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return handleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": presenter.ToUserResponse(user),
	})
}
