// internal/domain/auth/dto.go
package auth

import "time"

// RegisterRequest for user registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	IPAddress   string `json:"-"`
	UserAgent   string `json:"-"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	DeviceID  string `json:"device_id"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResponse carries the issued token and the signed-in account.
type AuthResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	IdentityKey string    `json:"identity_key"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Roles       []string  `json:"roles,omitempty"`
}

// AuthModeRequest sets the persisted guest/user mode flag for a device.
type AuthModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=guest user"`
}
