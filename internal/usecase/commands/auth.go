package commands

import (
	"context"
	"crypto/subtle"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/jwt"
)

var ErrInvalidAPIKey = errs.New("invalid API key")

type AuthTokenResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthCommands interface {
	IssueToken(ctx context.Context, apiKey, client string) (*AuthTokenResult, error)
}

type authUseCaseImpl struct {
	apiKey        string
	jwtService    *jwt.Service
	tokenDuration time.Duration
}

func NewAuthUseCase(apiKey string, jwtService *jwt.Service, tokenDuration time.Duration) AuthCommands {
	return &authUseCaseImpl{
		apiKey:        apiKey,
		jwtService:    jwtService,
		tokenDuration: tokenDuration,
	}
}

// IssueToken exchanges the shared dashboard API key for a short-lived JWT.
func (u *authUseCaseImpl) IssueToken(_ context.Context, apiKey, client string) (*AuthTokenResult, error) {
	if u.apiKey == "" ||
		subtle.ConstantTimeCompare([]byte(apiKey), []byte(u.apiKey)) != 1 {
		return nil, ErrInvalidAPIKey
	}
	if client == "" {
		client = "dashboard"
	}

	token, err := u.jwtService.GenerateToken(client)
	if err != nil {
		return nil, errs.Wrap(err, "generate token")
	}
	return &AuthTokenResult{
		Token:     token,
		ExpiresIn: int64(u.tokenDuration.Seconds()),
	}, nil
}
