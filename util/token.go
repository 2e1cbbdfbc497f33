package util

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account roles embedded in bearer tokens.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Bearer tokens are valid for 30 days; there is no refresh or revocation.
const tokenTTL = 30 * 24 * time.Hour

// AccountClaims are the JWT claims carried by every bearer token: the
// account's record ID and its role ("patient" or "doctor").
type AccountClaims struct {
	AccountID uint   `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken signs an HS256 bearer token embedding the account id and role.
func CreateToken(accountID uint, role string) (string, error) {
	claims := AccountClaims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetJWTSecretByte())
}

// ParseToken validates a bearer token string and returns its claims.
// Expired, malformed, or wrongly signed tokens return an error.
func ParseToken(tokenString string) (*AccountClaims, error) {
	claims := &AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.AccountID == 0 || claims.Role == "" {
		return nil, fmt.Errorf("token missing account claims")
	}
	return claims, nil
}
