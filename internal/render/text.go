package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// toCP1252 converts UTF-8 text to Windows-1252 for the PDF core fonts.
// Characters outside the code page lose their diacritics ("ř" -> "r") or
// become "?".
func toCP1252(s string) string {
	enc := charmap.Windows1252.NewEncoder()
	if out, err := enc.String(s); err == nil {
		return out
	}

	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		if out, err := enc.String(string(r)); err == nil {
			b.WriteString(out)
			continue
		}
		folded, _, err := transform.String(foldDiacritics, string(r))
		if err == nil && folded != "" {
			if out, err := enc.String(folded); err == nil {
				b.WriteString(out)
				continue
			}
		}
		b.WriteByte('?')
	}
	return b.String()
}

// latexEscape escapes special LaTeX characters in user text.
func latexEscape(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		`{`, `\{`,
		`}`, `\}`,
		`%`, `\%`,
		`&`, `\&`,
		`#`, `\#`,
		`$`, `\$`,
		`_`, `\_`,
		`^`, `\textasciicircum{}`,
		`~`, `\textasciitilde{}`,
		"\n", " ",
	)
	return replacer.Replace(s)
}
