package pagewire

import (
	"fmt"
	"regexp"
	"strings"
)

// Identifier names a kind of Section. It's the part of the section marker
// after the double hyphen: the Identifier of a section with the class
// site-section--importer-status is "importer-status".
type Identifier string

// The identifiers of the sections the site renders.
const (
	IdentifierUser           Identifier = "user"
	IdentifierRegister       Identifier = "register"
	IdentifierPost           Identifier = "post"
	IdentifierImporter       Identifier = "importer"
	IdentifierImporterStatus Identifier = "importer-status"
	IdentifierBans           Identifier = "bans"
)

var (
	identifierPattern = regexp.MustCompile(`^[a-z-]+$`)

	// markers are matched byte by byte; Unicode case folding would let
	// characters like U+017F through as an "s".
	markerIdentifierPattern = regexp.MustCompile(`^[A-Za-z-]+$`)
)

// Validate returns an error wrapping ErrInvalidIdentifier unless the
// Identifier is made only of lowercase letters and hyphens.
func (id Identifier) Validate() error {
	if !identifierPattern.MatchString(string(id)) {
		return fmt.Errorf("%q: %w", id, ErrInvalidIdentifier)
	}
	return nil
}

// key is what Handlers are looked up by. Markers match ASCII letters in
// either case, registrations are always lowercase.
func (id Identifier) key() Identifier {
	return Identifier(asciiLower(string(id)))
}

// ParseIdentifier extracts the Identifier from the value of a section's class
// attribute, using DefaultSectionClass as the marker. The first class of the
// form site-section--<identifier> wins, wherever it appears in the list, and
// the identifier is returned exactly as written. Only ASCII letters and
// hyphens are accepted in the identifier, in either case, and the marker
// class itself only matches ASCII case-insensitively. The second return value
// is false when no class matches.
func ParseIdentifier(classAttr string) (Identifier, bool) {
	return parseIdentifier(DefaultSectionClass, classAttr)
}

func parseIdentifier(sectionClass, classAttr string) (Identifier, bool) {
	prefix := sectionClass + "--"
	for _, class := range strings.Fields(classAttr) {
		if len(class) <= len(prefix) || !asciiEqualFold(class[:len(prefix)], prefix) {
			continue
		}
		id := class[len(prefix):]
		if !markerIdentifierPattern.MatchString(id) {
			continue
		}
		return Identifier(id), true
	}
	return "", false
}

// asciiEqualFold is strings.EqualFold restricted to ASCII letters. Any
// non-ASCII byte only matches itself.
func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiLowerByte(a[i]) != asciiLowerByte(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		buf[i] = asciiLowerByte(c)
	}
	return string(buf)
}

func asciiLowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
