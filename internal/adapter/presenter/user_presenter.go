package presenter

import (
	"encoding/json"

	authDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/auth"
	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/usecase/auth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}

	var prefs map[string]interface{}
	if u.Preferences != nil {
		json.Unmarshal(u.Preferences, &prefs)
	}

	response := &authDTO.UserResponse{
		ID:                u.ID.String(),
		Email:             u.Email,
		Name:              u.Name,
		CalendarConnected: u.HasCalendarConnected(),
		Timezone:          u.Timezone,
		AverageHourlyCost: u.AverageHourlyCost,
		Preferences:       prefs,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}

	if u.OAuthProvider != nil {
		response.OAuthProvider = *u.OAuthProvider
	}

	return response
}

// ToAuthResponse converts a usecase AuthResult to the auth response DTO
func ToAuthResponse(result *auth.AuthResult) *authDTO.AuthResponse {
	if result == nil {
		return nil
	}

	return &authDTO.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    int(result.ExpiresIn),
		TokenType:    "Bearer",
		User:         ToUserResponse(result.User),
	}
}

// ToRefreshTokenResponse converts a usecase AuthResult to the refresh
// response DTO
func ToRefreshTokenResponse(result *auth.AuthResult) *authDTO.RefreshTokenResponse {
	if result == nil {
		return nil
	}
	return &authDTO.RefreshTokenResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   int(result.ExpiresIn),
		TokenType:   "Bearer",
	}
}
