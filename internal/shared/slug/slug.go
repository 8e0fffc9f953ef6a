// Package slug builds ASCII URL segments from Vietnamese product names.
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

// đ has no decomposition, so it is mapped by hand.
var stroke = strings.NewReplacer("đ", "d", "Đ", "d")

func FromName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, stroke.Replace(s))
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = nonAlnum.ReplaceAllString(folded, "-")
	folded = strings.Trim(folded, "-")
	if folded == "" {
		return "san-pham"
	}
	return folded
}
