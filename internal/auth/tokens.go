package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the claims carried by a back-office operator token
type AdminClaims struct {
	jwt.RegisteredClaims
	Operator string `json:"operator"`
}

// IssueAdminToken mints a signed admin token for a back-office operator
func IssueAdminToken(operator string, ttl time.Duration, secret []byte) (string, error) {
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Operator: operator,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing admin token: %w", err)
	}

	return tokenString, nil
}

// ParseAdminToken validates a token string and returns its claims
func ParseAdminToken(tokenString string, secret []byte) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, new(AdminClaims), func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parsing admin token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, errors.New("invalid admin claims")
	}

	return claims, nil
}
