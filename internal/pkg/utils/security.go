package utils

import (
	"errors"
	"medirdv-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func HashAPIKey(apiKey string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckAPIKeyHash(apiKey, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}

// ParseHookJWT validates an HS256 token and returns its issuer.
func ParseHookJWT(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	if !token.Valid {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("invalid token"))
	}
	if claims.ExpiresAt == nil {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("token has no expiry"))
	}

	return claims.Issuer, nil
}
