// Package auth issues and checks the access JWTs handed out after a
// principal proves control of its address.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the principal address next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Principal string `json:"principal"`
}

const issuer = "petguard-ledger"

func GenerateToken(principal string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Principal: principal,
	})

	return token.SignedString(secretKey)
}

// GetPrincipalFromToken validates tokenString and returns its principal.
// An expired token yields common.ErrTokenExpired, anything else that fails
// validation yields an error wrapping common.ErrInvalidToken.
func GetPrincipalFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Principal == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Principal, nil
}
