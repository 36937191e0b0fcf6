package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey stores the signing key loaded at startup via InitJWTKey.
var jwtKey []byte

// InitJWTKey sets the JWT signing secret loaded from configuration.
func InitJWTKey(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	jwtKey = []byte(secret)
	return nil
}

type Claims struct {
	AnalystID int    `json:"analyst_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a short-lived access token for API usage.
func GenerateAccessToken(analystID int, email string) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)
	claims := &Claims{
		AnalystID: analystID,
		Email:     email,
		TokenType: "ACCESS",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "sku-scorecard",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// GenerateRefreshToken creates a long-lived refresh token used to issue new
// access tokens.
func GenerateRefreshToken(analystID int, email string) (string, error) {
	expirationTime := time.Now().Add(7 * 24 * time.Hour)
	claims := &Claims{
		AnalystID: analystID,
		Email:     email,
		TokenType: "REFRESH",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "sku-scorecard",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken parses and verifies JWT claims and signature integrity.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
