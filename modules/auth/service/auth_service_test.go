package service

import (
	"context"
	"testing"

	"meetsync/core/config"
	"meetsync/core/errors"
	"meetsync/modules/auth/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupConfig(t *testing.T, apiKey string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.MinCost)
	require.NoError(t, err)

	config.Set(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 60,
			Clients: []config.ClientCredential{
				{ClientID: "client-a", APIKeyHash: string(hash)},
			},
		},
	})
	t.Cleanup(func() { config.Set(nil) })
}

func TestIssueTokenSuccess(t *testing.T) {
	setupConfig(t, "super-secret-key")
	svc := NewAuthService()

	resp, appErr := svc.IssueToken(context.Background(), &dto.TokenRequest{
		ClientID: "client-a",
		APIKey:   "super-secret-key",
	})
	require.Nil(t, appErr)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestIssueTokenWrongKey(t *testing.T) {
	setupConfig(t, "super-secret-key")
	svc := NewAuthService()

	resp, appErr := svc.IssueToken(context.Background(), &dto.TokenRequest{
		ClientID: "client-a",
		APIKey:   "wrong",
	})
	require.Nil(t, resp)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestIssueTokenUnknownClient(t *testing.T) {
	setupConfig(t, "super-secret-key")
	svc := NewAuthService()

	resp, appErr := svc.IssueToken(context.Background(), &dto.TokenRequest{
		ClientID: "nobody",
		APIKey:   "super-secret-key",
	})
	require.Nil(t, resp)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}
