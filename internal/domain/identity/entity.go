// internal/domain/identity/entity.go
package identity

// Mode mirrors the persisted auth-mode flag ("guest" vs "user").
type Mode string

const (
	ModeGuest Mode = "guest"
	ModeUser  Mode = "user"
)

// Identity describes who a request is acting as. It is resolved once per
// request (or per websocket session) and passed explicitly; there is no
// ambient identity state anywhere in the service.
type Identity struct {
	Mode  Mode
	Key   string // stable per-identity key (identity ULID); empty for guests
	Email string
	Roles []string
}

// Guest returns the unauthenticated identity.
func Guest() Identity {
	return Identity{Mode: ModeGuest}
}

// User returns an authenticated identity for the given key.
func User(key, email string, roles []string) Identity {
	return Identity{Mode: ModeUser, Key: key, Email: email, Roles: roles}
}

func (i Identity) Authenticated() bool {
	return i.Mode == ModeUser && i.Key != ""
}
