package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/famtrack/vaxtrack/internal/common"
)

// GenerateToken signs an HS256 token whose subject is the account's
// username, valid for validityDuration from now.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})
	return token.SignedString(secretKey)
}

// SubjectFromToken verifies the token's signature and expiry and returns its
// subject. Every failure mode (bad signature, expired, malformed, wrong
// signing method, empty subject) yields common.ErrInvalidToken so callers
// cannot tell them apart.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
