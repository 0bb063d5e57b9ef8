package faceauth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kozaktomas/face-vault/internal/store"
)

// ErrInvalidUserID is returned for empty, over-long or non-printable ids.
var ErrInvalidUserID = errors.New("invalid user id")

// RemoveDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeUserID canonicalizes a user id before it becomes a template key:
// surrounding whitespace is trimmed and diacritics are folded, so the same
// person typed as "Jiří" and "Jiri" keys one template. The sensor protocol
// limits ids to printable ASCII of bounded length.
func NormalizeUserID(userID string) (string, error) {
	id := RemoveDiacritics(strings.TrimSpace(userID))
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidUserID)
	}
	if len(id) > store.MaxUserIDLength {
		return "", fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidUserID, id, store.MaxUserIDLength)
	}
	for _, r := range id {
		if r < 0x20 || r > 0x7e {
			return "", fmt.Errorf("%w: %q contains non-printable or non-ASCII characters", ErrInvalidUserID, id)
		}
	}
	return id, nil
}
