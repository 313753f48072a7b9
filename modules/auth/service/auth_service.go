package service

import (
	"context"
	"time"

	"meetsync/core/config"
	"meetsync/core/constants"
	"meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/core/utils"
	"meetsync/modules/auth/dto"

	"golang.org/x/crypto/bcrypt"
)

// AuthServiceInterface defines the token issuance contract
type AuthServiceInterface interface {
	IssueToken(ctx context.Context, requestData *dto.TokenRequest) (*dto.TokenResponse, *errors.AppError)
}

// AuthService validates configured client credentials and issues access tokens
type AuthService struct{}

// NewAuthService creates an auth service
func NewAuthService() AuthServiceInterface {
	return &AuthService{}
}

// IssueToken checks the api key against the configured bcrypt hash for the
// client and returns a short-lived bearer token.
func (service *AuthService) IssueToken(ctx context.Context, requestData *dto.TokenRequest) (*dto.TokenResponse, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	client := findClient(cfg.Auth.Clients, requestData.ClientID)
	if client == nil {
		logger.Warn("AuthService:IssueToken:UnknownClient", "client_id", requestData.ClientID)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid client credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.APIKeyHash), []byte(requestData.APIKey)); err != nil {
		logger.Warn("AuthService:IssueToken:BadAPIKey", "client_id", requestData.ClientID)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid client credentials", nil)
	}

	ttl := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	token, err := utils.GenerateToken(client.ClientID, constants.ScopeTokenAccess, cfg.Auth.JWTSecret, ttl)
	if err != nil {
		logger.Error("AuthService:IssueToken:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}

func findClient(clients []config.ClientCredential, clientID string) *config.ClientCredential {
	for i := range clients {
		if clients[i].ClientID == clientID {
			return &clients[i]
		}
	}
	return nil
}
