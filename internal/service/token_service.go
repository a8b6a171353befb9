package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/config"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// UserClaims are the JWT claims carried by both token kinds:
// {id, email, role}.
type UserClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"userType"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies access/refresh tokens. Refresh
// tokens are persisted keyed by (user, role) and invalidated on logout.
type TokenService interface {
	GenerateAccessToken(userID uint, email, role string) (string, error)
	GenerateRefreshToken(userID uint, email, role string) (string, error)
	VerifyAccessToken(token string) (*UserClaims, error)
	VerifyRefreshToken(token, role string) (*UserClaims, error)
	InvalidateRefreshToken(token, role string) error
}

type tokenService struct {
	cfg       *config.Config
	tokenRepo repository.RefreshTokenRepository
}

func NewTokenService(cfg *config.Config, tokenRepo repository.RefreshTokenRepository) TokenService {
	return &tokenService{cfg: cfg, tokenRepo: tokenRepo}
}

func (s *tokenService) sign(userID uint, email, role, secret string, ttl time.Duration) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *tokenService) GenerateAccessToken(userID uint, email, role string) (string, error) {
	return s.sign(userID, email, role, s.cfg.Auth.JWTSecret, accessTokenTTL)
}

func (s *tokenService) GenerateRefreshToken(userID uint, email, role string) (string, error) {
	token, err := s.sign(userID, email, role, s.cfg.Auth.RefreshSecret, refreshTokenTTL)
	if err != nil {
		return "", err
	}
	err = s.tokenRepo.Upsert(&model.RefreshToken{
		UserID:   userID,
		UserType: role,
		Token:    token,
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("role", role).Msg("Failed to persist refresh token")
		return "", fmt.Errorf("persisting refresh token: %w", err)
	}
	return token, nil
}

func (s *tokenService) parse(tokenStr, secret string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*UserClaims, error) {
	return s.parse(token, s.cfg.Auth.JWTSecret)
}

// VerifyRefreshToken checks the signature and requires the token to
// still be the persisted one for (user, role).
func (s *tokenService) VerifyRefreshToken(token, role string) (*UserClaims, error) {
	claims, err := s.parse(token, s.cfg.Auth.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.Find(claims.UserID, token, role); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *tokenService) InvalidateRefreshToken(token, role string) error {
	return s.tokenRepo.DeleteByToken(token, role)
}
