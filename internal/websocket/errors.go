// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrSessionExpired = errors.New("session has expired")
	ErrInvalidToken   = errors.New("invalid token")
)
