package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "zerobite-test",
	}
}

func TestSignUpAndLogin(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, ports.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)

	resp, err = svc.Login(ctx, ports.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignUpDuplicate(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.SignUp(context.Background(), ports.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, entities.ErrUserExists)
}

func TestSignUpEmptyFields(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, ports.RegisterRequest{Username: "   ", Password: "pw"})
	assert.ErrorIs(t, err, entities.ErrEmptyField)

	_, err = svc.SignUp(ctx, ports.RegisterRequest{Username: "alice", Password: ""})
	assert.ErrorIs(t, err, entities.ErrEmptyField)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.Login(context.Background(), ports.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLoginUnknownUserNeverCreates(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Login(ctx, ports.LoginRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	// A failed login must not mint an account.
	exists, err := repo.Exists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestValidateToken(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	resp, err := svc.SignUp(context.Background(), ports.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repo := newTestRepo(t)
	issuer := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	resp, err := issuer.SignUp(context.Background(), ports.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = "different-secret"
	verifier := NewAuthService(repo, otherCfg, logger.NewNop())

	_, err = verifier.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
