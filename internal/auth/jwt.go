package auth

import (
	"time"

	"jobboard-service/internal/authz"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider issues and verifies the HS256 access tokens the identity
// boundary hands out. Claims carry the user id and role; organization
// affiliation is resolved from the stored user on every request.
type TokenProvider struct {
	secret []byte
	expiry time.Duration
}

func NewTokenProvider(secret string, expiryMinutes int) *TokenProvider {
	return &TokenProvider{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

type Claims struct {
	Role authz.Role `json:"role"`
	jwt.RegisteredClaims
}

func (p *TokenProvider) Generate(userID string, role authz.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *TokenProvider) Parse(tokenString string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
