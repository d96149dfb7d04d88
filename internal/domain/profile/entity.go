// internal/domain/profile/entity.go
package profile

// Language is the UI language preference.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used when no profile exists or the stored language is
// not recognized.
const DefaultLanguage = LanguageGerman

// Profile holds the per-identity display name and language preference.
// It lives in the shared profiles partition, keyed by the same sanitized
// identity key that names the customer partition.
type Profile struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Language  Language `json:"language"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Initials derives the avatar initials from the profile names.
func (p Profile) Initials() string {
	var out []rune
	for _, name := range []string{p.FirstName, p.LastName} {
		for _, r := range name {
			out = append(out, r)
			break
		}
	}
	return string(out)
}

// NormalizeLanguage passes recognized codes through and maps anything else
// to the default.
func NormalizeLanguage(raw string) Language {
	switch Language(raw) {
	case LanguageGerman, LanguageEnglish:
		return Language(raw)
	default:
		return DefaultLanguage
	}
}
