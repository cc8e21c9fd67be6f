package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrInvalidWebhookToken = errors.New("invalid webhook callback token")
)
