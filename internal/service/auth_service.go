package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
	"github.com/stocktrade-simulator/pkg/crypto"
)

var (
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrEmailTaken         = apperror.Conflict("email already registered")
	ErrInvalidToken       = apperror.Unauthorized("invalid or expired token")
)

const tokenIssuer = "stocktrade-simulator"

// AuthService handles authentication operations
type AuthService struct {
	userRepo       *repository.UserRepository
	jwtConfig      config.JWTConfig
	initialBalance decimal.Decimal
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, jwtConfig config.JWTConfig, tradingConfig config.TradingConfig) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtConfig:      jwtConfig,
		initialBalance: decimal.NewFromFloat(tradingConfig.InitialBalance),
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required,numeric,len=10"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the token to exchange for a fresh one
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// TokenResponse represents the JWT token response
type TokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int                `json:"expires_in"`
	User        models.UserProfile `json:"user"`
}

// JWTClaims represents the JWT claims
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register registers a new user funded with the configured starting balance
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Mobile:       req.Mobile,
		PasswordHash: passwordHash,
		Balance:      s.initialBalance,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, apperror.Internal("", err)
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Internal("", err)
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateToken(user)
}

// RefreshToken exchanges a valid token for a new one
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*TokenResponse, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, apperror.Internal("", err)
	}

	return s.generateToken(user)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// generateToken generates a JWT token for a user
func (s *AuthService) generateToken(user *models.User) (*TokenResponse, error) {
	expiresIn := time.Duration(s.jwtConfig.ExpireHours) * time.Hour
	now := time.Now()

	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	return &TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtConfig.ExpireHours * 3600,
		User:        user.Profile(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
