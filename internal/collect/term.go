package collect

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTerm prepares a search term for URL interpolation: surrounding and
// repeated whitespace is collapsed and diacritics are folded ("Água Azul"
// becomes "Agua Azul"), since the search API matches on the folded form.
func NormalizeTerm(term string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, term)
	if err != nil {
		folded = term
	}
	return strings.Join(strings.Fields(folded), " ")
}
