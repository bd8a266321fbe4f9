// Package auth implements session token signing and verification, plus the
// request-context identity produced by the HTTP authenticator.
package auth

import (
	"fmt"
	"time"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the authenticated user's id in addition to the registered
// claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// GenerateToken signs an HS256 token encoding the user's id. The uuid jti
// keeps two tokens for the same user distinct even when issued within the
// same second; the sessions table has a unique token column.
func GenerateToken(userID int64, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the token signature and returns the embedded
// user id. Malformed tokens, bad signatures and non-HMAC algorithms all fail
// with common.ErrUnauthenticated.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	if !token.Valid {
		return 0, common.ErrUnauthenticated
	}

	return claims.UserID, nil
}
