package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platops/user-directory/internal/core/domain"
	"github.com/platops/user-directory/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// accessClaims is the wire shape of an issued token: identity and role rank
// plus the registered expiry claim.
type accessClaims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Level  int    `json:"level"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed access tokens. The signing
// secret is loaded once at startup and never rotated at runtime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	claims := accessClaims{
		UserID: user.ID,
		Name:   user.Name,
		Level:  user.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (*ports.Claims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &ports.Claims{
		UserID: claims.UserID,
		Name:   claims.Name,
		Level:  claims.Level,
	}, nil
}
