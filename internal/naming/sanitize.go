package naming

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how category names are folded into directory names.
type Mode string

const (
	ModeASCII   Mode = "ascii"   // NFKD, strip marks, transliterate (default).
	ModeUnicode Mode = "unicode" // NFKC, keep Unicode letters and digits.
	ModeSlug    Mode = "slug"    // gosimple/slug: lowercase, hyphenated.
)

// Sanitizer converts category names into path segments. The zero value uses
// ModeASCII.
type Sanitizer struct {
	Mode Mode
}

var (
	reInvalidASCII   = regexp.MustCompile(`[^\w\s-]`)
	reInvalidUnicode = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Zs}-]`)
	reSeparators     = regexp.MustCompile(`[-\s\p{Zs}]+`)
)

// Sanitize folds name with the default ASCII rules.
func Sanitize(name string) string {
	return Sanitizer{}.Sanitize(name)
}

// Sanitize returns a path segment for name. The result contains no path
// separators and has no leading or trailing hyphens or underscores. It is
// empty only when name has no letters or digits to keep.
func (s Sanitizer) Sanitize(name string) string {
	switch s.Mode {
	case ModeSlug:
		return slug.Make(name)
	case ModeUnicode:
		v := norm.NFKC.String(name)
		v = reInvalidUnicode.ReplaceAllString(v, "")
		return collapse(v)
	default:
		v := reInvalidASCII.ReplaceAllString(foldASCII(name), "")
		return collapse(v)
	}
}

// stripMarks decomposes and drops combining marks so "é" (U+00E9) and
// "é" fold to the same "e".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// foldASCII reduces s to ASCII. Marks are removed after decomposition; any
// other non-ASCII rune (CJK, Cyrillic, ß) is transliterated.
func foldASCII(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = norm.NFKD.String(s)
	}
	return unidecode.Unidecode(folded)
}

func collapse(s string) string {
	s = reSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}

// ParseMode maps a user-facing name onto a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeASCII:
		return ModeASCII, true
	case ModeUnicode:
		return ModeUnicode, true
	case ModeSlug:
		return ModeSlug, true
	}
	return "", false
}
