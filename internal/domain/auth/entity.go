// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Account is a locally registered identity. Its ULID doubles as the
// stable identity key the partition resolver derives storage keys from.
type Account struct {
	ID           string         `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	DisplayName  sql.NullString `json:"display_name,omitempty" db:"display_name"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Roles        pq.StringArray `json:"roles" db:"roles"`
	LastLogin    sql.NullTime   `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
