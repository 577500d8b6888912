package auth

import "errors"

// Token verification failures. The middleware maps ErrExpiredToken to a
// "Token expired" response and every other failure to "Invalid token".
var (
	// ErrInvalidToken covers bad signatures, malformed tokens, wrong issuer
	// and missing sub or scope claims.
	ErrInvalidToken     = errors.New("invalid access token")
	ErrExpiredToken     = errors.New("access token has expired")
	ErrTokenNotYetValid = errors.New("access token not yet valid")
	ErrMissingToken     = errors.New("access token is missing")
)
