package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make derives a URL slug from a display name: lowercase, accents stripped,
// anything outside [a-z0-9] collapsed to a single hyphen, no leading or
// trailing hyphens. Deriving twice from the same name gives the same slug.
func Make(nom string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, nom)
	if err != nil {
		folded = nom
	}
	s := strings.ToLower(folded)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
