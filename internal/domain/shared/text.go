package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold lowercases s and strips diacritical marks so that Vietnamese names
// compare equal regardless of accents ("Tủ Bếp" == "tu bep"). The Đ/đ pair
// is not a combining mark and is mapped by hand.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.ReplaceAll(folded, "đ", "d")
	return strings.TrimSpace(folded)
}

// Initials returns the uppercased first letter of each word in s, with
// diacritics folded. Used for quote number prefixes.
func Initials(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(Fold(s)) {
		r := []rune(word)
		if len(r) > 0 {
			b.WriteRune(unicode.ToUpper(r[0]))
		}
	}
	return b.String()
}
