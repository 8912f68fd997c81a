package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"learnhub/backend/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify the user behind a token. The role is not carried: it is
// read from the user record on every request.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func GenerateJWTToken(userID uuid.UUID, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a raw Authorization header value, with or without the
// Bearer prefix, and returns the user id it was issued for.
func ParseToken(header string, cfg *config.Config) (uuid.UUID, error) {
	tokenString := strings.TrimSpace(header)
	if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "bearer ") {
		tokenString = strings.TrimSpace(tokenString[7:])
	}
	if tokenString == "" {
		return uuid.Nil, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
