package auth

// RefreshTokenRequest asks for a new access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
