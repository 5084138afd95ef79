package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateToken(secret string, ttl time.Duration, userID uuid.UUID, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    string(role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a raw token outside the HTTP middleware, as the
// websocket auth frame requires.
func ParseToken(secret, tokenString string) (uuid.UUID, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", errors.New("invalid token")
	}
	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", ErrInvalidClaims
	}
	role, _ := claims["role"].(string)
	return userID, models.Role(role), nil
}
