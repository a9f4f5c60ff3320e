package dto

import (
	"time"

	userdto "group-scheduler/modules/user/dto"
)

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        userdto.UserResponse `json:"user"`
}

type GoogleAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// GoogleUserInfo represents the userinfo payload returned by Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
