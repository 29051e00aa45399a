package service

import (
	"time"

	"taskdeck/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed session tokens. Tokens are
// stateless; there is no server-side revocation, logout is a client-side
// action only.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.ttl).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a token and returns the encoded user id. Missing,
// malformed, expired and badly signed tokens all collapse into
// domain.ErrInvalidToken; callers respond 401 uniformly.
func (s *TokenService) Parse(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < now {
		return 0, domain.ErrInvalidToken
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return 0, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return int64(userID), nil
}
