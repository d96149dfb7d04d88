// internal/pkg/partition/partition.go
package partition

import (
	"strings"

	"crm-service/internal/domain/identity"
)

const (
	// BasePrefix is the prefix shared by all customer partitions.
	BasePrefix = "customers_"

	// PublicPartition is the shared partition used by guest sessions.
	PublicPartition = BasePrefix + "public"

	// ProfilePartition holds one profile document per identity key.
	ProfilePartition = "profiles"

	// fallbackKey is used when an authenticated identity carries no key,
	// so Resolve never returns the bare prefix.
	fallbackKey = "user"
)

// Resolve maps an identity to the partition holding its customer documents.
// Pure and deterministic: the same identity always resolves to the same
// partition. Two distinct keys that sanitize to the same string collide;
// that is an accepted limitation, not detected here.
func Resolve(id identity.Identity) string {
	if id.Mode != identity.ModeUser {
		return PublicPartition
	}
	return BasePrefix + Sanitize(id.Key)
}

// Sanitize derives a storage-safe key from an arbitrary identity key.
// Every rune outside [A-Za-z0-9] is replaced with '_'. Shared by the
// partition resolver and the profile document id scheme.
func Sanitize(key string) string {
	if key == "" {
		key = fallbackKey
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
}
