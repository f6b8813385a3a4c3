package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventgather/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTCodec issues and verifies HS256 JWTs carrying the subject id and role.
// It implements both domain.TokenIssuer and domain.TokenVerifier.
type JWTCodec struct {
	secret []byte
}

// NewJWTCodec returns a codec signing with the given shared secret.
func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

// Issue signs a token for the subject, expiring after expiry.
func (c *JWTCodec) Issue(subjectID string, role domain.Role, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates the token, returning the subject id and role.
// Expired or tampered tokens fail, as do tokens carrying an unknown role.
func (c *JWTCodec) Verify(tokenString string) (string, domain.Role, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("token has no subject")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return "", "", fmt.Errorf("invalid role claim: %w", err)
	}
	return claims.Subject, role, nil
}
