// Package auth issues and verifies HS256 access tokens for developers.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "planningpoker"

// Claims carries the standard claims plus the developer id.
type Claims struct {
	jwt.RegisteredClaims
	DeveloperID int64 `json:"developer_id"`
}

func GenerateToken(developerID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(developerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		DeveloperID: developerID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetDeveloperIDFromToken validates tokenString and returns its developer id.
// Expired tokens yield common.ErrTokenExpired, every other failure
// common.ErrInvalidToken.
func GetDeveloperIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.DeveloperID <= 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.DeveloperID, nil
}
