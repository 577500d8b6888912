package auth

import (
	"context"
	"time"
)

// TestSecret is a signing secret long enough for NewJWTService.
const TestSecret = "test-jwt-secret-that-is-32-chars-long"

// NewTestJWTService creates a JWT service with a fixed secret and clock.
// A nil timeFunc uses time.Now.
func NewTestJWTService(secret string, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey: []byte(secret),
		timeFunc:   timeFunc,
	}
}

// BearerForTesting signs a one-hour token for subject and returns it as an
// Authorization header value.
func BearerForTesting(svc JWTService, subject string, scopes ...string) (string, error) {
	token, err := svc.GenerateToken(context.Background(), subject, scopes, time.Hour)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
