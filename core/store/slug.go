package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and strips the combining marks,
// so "Académie Légère" folds to "Academie Legere".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the filesystem-safe directory name for a family name:
// ASCII-transliterated, lowercased, with runs of non-alphanumerics collapsed
// to single hyphens. The result uniquely determines the family directory, so
// this must stay deterministic across releases.
func Slugify(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
