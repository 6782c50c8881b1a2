package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL slug: "Hello, World! 2024" -> "hello-world-2024".
// Accents are folded first so "Café Déjà Vu" becomes "cafe-deja-vu".
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = foldAccents(s)
	s = strings.Map(normalizeSpace, s)
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// normalizeSpace maps Unicode whitespace (NBSP, em space, \v) to ' ',
// since RE2's \s only matches ASCII whitespace
func normalizeSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
