package auth

import "errors"

// Token errors returned by JWTService.ValidateToken. The API layer answers
// all of them with 401 so a planner client only learns to sign in again.
var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrExpiredToken means the token outlived its lifetime plus clock skew.
	ErrExpiredToken = errors.New("access token has expired")

	// ErrTokenNotYetValid means the token's nbf lies in the future.
	ErrTokenNotYetValid = errors.New("access token not yet valid")

	// ErrMissingToken is returned for a blank token string.
	ErrMissingToken = errors.New("access token is missing")
)
