package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService handles sign-up and login against the user document.
//
// Passwords are stored and compared in the clear, exactly as every prior
// version of the app did; the token is session plumbing for the HTTP
// boundary only.
type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// SignUp creates a new user record. This is the only path that creates
// users: opening or logging into an unknown account never mints one.
func (s *AuthService) SignUp(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", entities.ErrEmptyField)
	}

	if err := s.userRepo.Create(ctx, username, password); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "username", username)

	token, err := s.generateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		Username:    username,
	}, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	rec, err := s.userRepo.Get(ctx, username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", "username", username)
		return nil, entities.ErrInvalidCredentials
	}

	if rec.Password != password {
		s.logger.Warn("Login attempt with wrong password", "username", username)
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "username", username)

	token, err := s.generateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		Username:    username,
	}, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{Username: claims.Username}, nil
}

func (s *AuthService) generateAccessToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
