package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the JWT payload. UserID becomes the default owner of created
// exercises and plans.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ParseToken(tokenString string) (*Claims, error)
}

type tokenService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewTokenService returns an error when secret is empty.
func NewTokenService(secret string, expiration time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = time.Hour * 1
	}
	return &tokenService{
		jwtSecret:     []byte(secret),
		jwtExpiration: expiration,
		now:           time.Now,
	}, nil
}

func (s *tokenService) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", invalid("user id is required")
	}
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			Issuer:    "workouthub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParseToken validates signature, algorithm and expiry.
func (s *tokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}
	return claims, nil
}
