package authUtils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"smartcity-be/models"
)

// GenerateToken mints a JWT carrying the actor's name and role. The
// name claim is the identity key the core operates on.
func GenerateToken(secret string, actor models.Actor) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": actor.Name,
		"role": string(actor.Role),
		"exp":  time.Now().Add(time.Hour * 72).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and extracts the actor.
func ParseToken(secret, tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, fmt.Errorf("invalid token claims")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if name == "" {
		return models.Actor{}, fmt.Errorf("token missing name claim")
	}
	if role != string(models.RoleAdmin) {
		role = string(models.RoleUser)
	}
	return models.Actor{Name: name, Role: models.Role(role)}, nil
}
