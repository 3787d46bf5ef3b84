// Package sanitize normalizes text for rendering backends that only
// support a plain-ASCII character set.
package sanitize

import "strings"

// replacements maps typographic punctuation, currency symbols, and other
// common non-ASCII characters to plain-ASCII equivalents. Applied before
// the final strip so information-bearing characters survive as
// approximations rather than disappearing.
var replacements = map[rune]string{
	// Smart quotes and apostrophes.
	'‘': "'", '’': "'", '‚': "'", '‛': "'",
	'“': `"`, '”': `"`, '„': `"`,
	'«': `"`, '»': `"`, '‹': "'", '›': "'",

	// Dashes and ellipsis.
	'–': "-", '—': "-", '―': "-", '−': "-",
	'…': "...",

	// Bullets and separators.
	'•': "*", '·': "*", '‣': "*", '◦': "*",

	// Spaces.
	' ': " ", ' ': " ", ' ': " ", ' ': " ", ' ': " ",

	// Currency.
	'€': "EUR", '£': "GBP", '¥': "JPY", '₹': "INR",
	'¢': "c",

	// Common symbols.
	'©': "(c)", '®': "(r)", '™': "(tm)",
	'°': " deg", '×': "x", '÷': "/",
	'≠': "!=", '≤': "<=", '≥': ">=",
	'½': "1/2", '¼': "1/4", '¾': "3/4",
}

// pictographs maps frequently transcribed pictographic symbols to
// bracketed textual labels so their meaning survives sanitization.
var pictographs = map[rune]string{
	'✅':          "[check]",
	'✔':          "[check]",
	'❌':          "[cross]",
	'⚠':          "[warning]",
	'⭐':          "[star]",
	'❤':          "[heart]",
	'\U0001F44D': "[thumbs up]",
	'\U0001F44E': "[thumbs down]",
	'\U0001F600': "[smile]",
	'\U0001F602': "[laugh]",
	'\U0001F389': "[party]",
	'\U0001F525': "[fire]",
	'\U0001F680': "[rocket]",
	'\U0001F4A1': "[idea]",
	'\U0001F3B5': "[music]",
	'\U0001F3B6': "[music]",
}

// diacritics folds the Latin-1 accented range to base letters.
var diacritics = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y", 'ñ': "n", 'ç': "c", 'ß': "ss", 'æ': "ae", 'œ': "oe",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U",
	'Ý': "Y", 'Ñ': "N", 'Ç': "C", 'Æ': "AE", 'Œ': "OE",
}

// Clean converts text to a plain-ASCII representation. Typographic
// punctuation collapses to ASCII equivalents, currency and accented
// characters become approximations, recognized pictographs become
// bracketed labels, and anything still outside the ASCII range is
// dropped. Clean is a pure function and idempotent: Clean(Clean(s))
// equals Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if repl, ok := replacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if label, ok := pictographs[r]; ok {
			b.WriteString(label)
			continue
		}
		if base, ok := diacritics[r]; ok {
			b.WriteString(base)
			continue
		}
		// Not representable: drop.
	}
	return strings.TrimSpace(b.String())
}
