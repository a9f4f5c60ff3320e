package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"group-scheduler/core/logger"
	"group-scheduler/modules/auth/dto"

	"golang.org/x/oauth2"
)

// getGoogleUserInfo fetches the signed-in user's profile with the exchanged token.
func (s *AuthService) getGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("AuthService:GetGoogleUserInfo:Close", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: %s", string(body))
	}

	var info dto.GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}
	return &info, nil
}
