package jwt

import "errors"

var (
	ErrMissingSigningKey       = errors.New("jwt signing key is required")
	ErrMissingClaims           = errors.New("jwt claims are required")
	ErrInvalidToken            = errors.New("invalid jwt token")
	ErrInvalidSignature        = errors.New("invalid jwt signature")
	ErrExpiredToken            = errors.New("jwt token has expired")
	ErrUnexpectedSigningMethod = errors.New("unexpected jwt signing method")
)
