// internal/pkg/session/types.go
package session

import (
	"time"

	"crm-service/internal/domain/identity"
)

type SessionData struct {
	JTI            string        `json:"jti"`
	IdentityKey    string        `json:"identity_key"`
	Email          string        `json:"email"`
	Roles          []string      `json:"roles"`
	Mode           identity.Mode `json:"mode"`
	Language       string        `json:"language,omitempty"`
	IPAddress      string        `json:"ip_address,omitempty"`
	UserAgent      string        `json:"user_agent,omitempty"`
	LoginAt        time.Time     `json:"login_at"`
	LastActivityAt time.Time     `json:"last_activity_at"`
	ExpiresAt      time.Time     `json:"expires_at"`
}
