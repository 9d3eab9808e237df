// Package auth issues and verifies the signed worker identity tokens
// protecting the shoe API.
package auth

import (
	"time"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the worker code
// the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	WorkerCode string
}

// GenerateToken produces an HS256-signed token asserting workerCode,
// valid for validityDuration from now.
func GenerateToken(workerCode string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		WorkerCode: workerCode,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ExpirationUnixMilli returns the expiry moment for a token issued now,
// as milliseconds since epoch. Clients receive this alongside the token
// so they do not have to parse the expiry claim themselves; it is computed
// with the same offset the claim uses.
func ExpirationUnixMilli(validityDuration time.Duration) int64 {
	return time.Now().Add(validityDuration).UnixMilli()
}

// GetWorkerCodeFromToken verifies tokenString and extracts the worker code.
// A bad signature, malformed input or a passed expiry all yield
// common.ErrInvalidToken. The caller is expected to strip any
// "Bearer " prefix before calling.
func GetWorkerCodeFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.WorkerCode, nil
}
