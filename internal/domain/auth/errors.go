package auth

import "errors"

var (
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrTokenNotFound        = errors.New("refresh token not found")
	ErrTokenExpired         = errors.New("refresh token has expired")
	ErrTokenRevoked         = errors.New("refresh token has been revoked")
)
