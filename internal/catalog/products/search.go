package products

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

// Fold lowercases a keyword and strips combining marks so that searches match
// regardless of diacritics ("Cà Phê Sữa" and "ca phe sua" fold identically).
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	// Vietnamese đ/Đ are standalone letters, not combining marks.
	folded = strings.NewReplacer("đ", "d", "Đ", "D").Replace(folded)
	return strings.ToLower(strings.TrimSpace(folded))
}
