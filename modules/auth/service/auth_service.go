package service

import (
	"context"
	stderrors "errors"
	"time"

	"group-scheduler/core/cache"
	"group-scheduler/core/config"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/utils"
	"group-scheduler/modules/auth/dto"
	userdto "group-scheduler/modules/user/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// TokenManager issues and validates access tokens.
type TokenManager interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateAndParseToken(tokenString string) (*utils.TokenClaims, error)
}

// UserProvisioner finds or creates the local user for an external profile.
type UserProvisioner interface {
	ProvisionUser(ctx context.Context, profile userdto.Profile) (*userdto.UserResponse, *errors.AppError)
}

type AuthServiceInterface interface {
	VerifyToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
	GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code string, state string) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
}

type AuthService struct {
	cache       cache.Cache
	tokens      TokenManager
	users       UserProvisioner
	oauthConfig *oauth2.Config
	userInfoURL string
}

func NewAuthService(cache cache.Cache, tokens TokenManager, users UserProvisioner, oauthConfig *oauth2.Config) *AuthService {
	return &AuthService{
		cache:       cache,
		tokens:      tokens,
		users:       users,
		oauthConfig: oauthConfig,
		userInfoURL: googleUserInfoURL,
	}
}

// NewGoogleOAuthConfig returns nil when the Google credentials are not configured.
func NewGoogleOAuthConfig(cfg config.GoogleAPIConfig) *oauth2.Config {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// VerifyToken rejects revoked tokens before checking the signature and expiry.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:VerifyToken:IsTokenBlacklisted", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify token", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token has been revoked", nil)
	}

	claims, err := s.tokens.ValidateAndParseToken(token)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token has expired", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	return claims, nil
}

func (s *AuthService) GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	if s.oauthConfig == nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	state, err := gonanoid.New()
	if err != nil {
		logger.Error("AuthService:GetGoogleAuthURL:GenerateState", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to generate state", err)
	}

	if err := s.cache.SetOAuthState(ctx, state); err != nil {
		logger.Error("AuthService:GetGoogleAuthURL:SetOAuthState", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to save state", err)
	}

	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string, state string) (*dto.LoginResponse, *errors.AppError) {
	if s.oauthConfig == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	ok, err := s.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:ConsumeOAuthState", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check state", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state", nil)
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange", "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	info, err := s.getGoogleUserInfo(ctx, token)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetGoogleUserInfo", "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to fetch Google profile", err)
	}
	if !info.VerifiedEmail {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Google email is not verified", nil)
	}

	user, appErr := s.users.ProvisionUser(ctx, userdto.Profile{
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		PhotoURL:  info.Picture,
	})
	if appErr != nil {
		return nil, appErr
	}

	return s.login(user)
}

func (s *AuthService) login(user *userdto.UserResponse) (*dto.LoginResponse, *errors.AppError) {
	accessToken, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	claims, err := s.tokens.ValidateAndParseToken(accessToken)
	if err != nil {
		logger.Error("AuthService:Login:ValidateAndParseToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        *user,
	}, nil
}

// Logout blacklists the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, appErr := s.VerifyToken(ctx, token)
	if appErr != nil {
		return appErr
	}

	if claims.ExpiresAt == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "token has no expiry", nil)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}
