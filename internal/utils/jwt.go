package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"amparo/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the session validity window. The token is the sole identity
// proof after OTP verification; it carries no password material.
const TokenTTL = 7 * 24 * time.Hour

// GenerateToken signs a session token for the given claims. The JWT secret
// is expected to be set in the environment variable JWT_SECRET.
func GenerateToken(claims *models.UserClaims) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()

	sessionClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "amparo-api",
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:         claims.UserID,
		Email:          claims.Email,
		Role:           claims.Role,
		ElderProfileID: claims.ElderProfileID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseToken parses and validates a session token string.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}

	return token, claims, nil
}
