package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/domain/repositories"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/external/oauth"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
	"github.com/meetwiselabs/meetwise/pkg/jwt"
)

// OAuthService handles Google OAuth authentication. Sessions are stateless:
// access and refresh tokens are both self-contained JWTs.
type OAuthService struct {
	userRepo     repositories.UserRepository
	google       *oauth.GoogleProvider
	stateManager *oauth.StateManager
	jwtManager   *jwt.Manager
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(
	userRepo repositories.UserRepository,
	google *oauth.GoogleProvider,
	stateManager *oauth.StateManager,
	jwtManager *jwt.Manager,
	logger *zap.Logger,
) *OAuthService {
	return &OAuthService{
		userRepo:     userRepo,
		google:       google,
		stateManager: stateManager,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

// AuthURL is a generated Google consent URL with its CSRF state
type AuthURL struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// AuthResult is the outcome of a completed login
type AuthResult struct {
	User         *entities.User `json:"user"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
}

// GetGoogleAuthURL generates the Google consent URL with a one-time state
func (s *OAuthService) GetGoogleAuthURL(ctx context.Context) (*AuthURL, error) {
	state, err := s.stateManager.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &AuthURL{
		URL:   s.google.GetAuthURL(state),
		State: state,
	}, nil
}

// HandleGoogleCallback completes the OAuth flow: it validates the state,
// exchanges the code, finds or creates the user, stores the calendar refresh
// token, and issues tokens.
func (s *OAuthService) HandleGoogleCallback(ctx context.Context, code, state string) (*AuthResult, error) {
	if !s.stateManager.ValidateState(state) {
		return nil, errors.ErrInvalidOAuthState
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	googleUser, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	user, err := s.findOrCreateUser(ctx, googleUser)
	if err != nil {
		return nil, err
	}

	// The offline-access refresh token is what lets calendar sync run later
	// without the user present. Google only returns it on some logins.
	if token.RefreshToken != "" {
		if err := s.userRepo.UpdateOAuthToken(ctx, user.ID, token.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", err)
		}
		user.OAuthRefreshToken = &token.RefreshToken
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	return s.issueTokens(user)
}

func (s *OAuthService) findOrCreateUser(ctx context.Context, googleUser *oauth.GoogleUserInfo) (*entities.User, error) {
	user, err := s.userRepo.FindByOAuth(ctx, "google", googleUser.ID)
	if err == nil {
		return user, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// An existing email-only account gets linked rather than duplicated
	existing, err := s.userRepo.FindByEmail(ctx, googleUser.Email)
	if err == nil {
		provider := "google"
		existing.OAuthProvider = &provider
		existing.OAuthID = &googleUser.ID
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to link account: %w", err)
		}
		return existing, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = entities.NewOAuthUser(googleUser.Email, googleUser.Name, "google", googleUser.ID)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created from google login",
		zap.String("user_id", user.ID.String()),
	)

	return user, nil
}

// RefreshAccessToken issues a new access token from a valid refresh token
func (s *OAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

// CurrentUser loads the authenticated user's profile
func (s *OAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *OAuthService) issueTokens(user *entities.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
