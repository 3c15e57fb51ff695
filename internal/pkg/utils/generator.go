package utils

import (
	"medirdv-service/internal/pkg/constvars"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateLockToken() string {
	return uuid.New().String()
}

// GenerateSnapshotObjectName returns the object key of a snapshot taken at t.
func GenerateSnapshotObjectName(t time.Time) string {
	return constvars.SnapshotObjectPrefix + t.UTC().Format(time.RFC3339) + constvars.SnapshotObjectExtension
}

// GenerateHookJWT signs the bearer token the marketplace backend sends on working-hours hooks.
func GenerateHookJWT(issuer, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
