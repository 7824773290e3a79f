package style

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// specialChars are escaped with a leading backslash (spec §4.1).
const specialChars = `#$%&_`

// Sanitize applies the renderer's text-escaping contract (spec §4.1,
// tested in spec §8 property 7): smart/straight double quotes become
// TeX-style open/close quotes, `# $ % & _` are backslash-escaped, `~`
// becomes `$\sim$`, and `<`/`>` become `\textless`/`\textgreater`.
//
// Input is normalized to NFC first: Markdown sources may arrive with a
// quote or accented letter spelled as a base rune plus a combining mark,
// which would otherwise slip through the rune-by-rune switch below
// unrecognized.
//
// Quote conversion runs next so the quote characters themselves are
// never mistaken for one of the special characters above.
func Sanitize(s string) string {
	s = norm.NFC.String(s)
	s = convertQuotes(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case strings.ContainsRune(specialChars, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '~':
			b.WriteString(`$\sim$`)
		case r == '<':
			b.WriteString(`\textless`)
		case r == '>':
			b.WriteString(`\textgreater`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// convertQuotes turns quoted substrings delimited by straight (`"`) or
// smart (“ ”) double quotes into the TeX idiom ``…''. Quotes are paired
// left-to-right; an unmatched trailing quote still becomes the opening
// `` and is not closed.
func convertQuotes(s string) string {
	var b strings.Builder
	open := false
	for _, r := range s {
		switch r {
		case '"', '“', '”':
			if !open {
				b.WriteString("``")
				open = true
			} else {
				b.WriteString("''")
				open = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
