package services

import (
	"fmt"
	"time"

	apperrors "abchotels/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenVerifier resolves an access token to the user it was issued for
type TokenVerifier interface {
	ParseToken(tokenString string) (UserInfo, error)
}

// TokenService issues and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken signs a token for userInfo valid for the configured TTL
func (s *TokenService) GenerateToken(userInfo UserInfo) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("access token secret is not configured")
	}
	now := s.now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken checks the signature and expiry and returns the embedded user
func (s *TokenService) ParseToken(tokenString string) (UserInfo, error) {
	if tokenString == "" {
		return UserInfo{}, apperrors.NewAppError(apperrors.ErrCodeMissingToken, "Missing access token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid or expired token", err)
	}
	if claims.UserInfo.UserId == 0 {
		return UserInfo{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token carries no user", nil)
	}
	return claims.UserInfo, nil
}
