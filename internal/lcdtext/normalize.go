// Package lcdtext folds accented text into the 8-bit charset an HD44780-class
// display can actually show. Weather descriptions and weekday names arrive as
// UTF-8 with Latin-1 Supplement letters (ção, Sáb); without folding the panel
// renders them as garbage glyphs. This is a display-compatibility transform,
// not a general transliterator.
package lcdtext

// accentGroups maps each ASCII fallback letter to the accented letters it
// stands in for. Every rune here encodes as 0xC3 plus one continuation byte.
var accentGroups = map[byte]string{
	'a': "àáâãäå",
	'e': "èéêë",
	'i': "ìíîï",
	'o': "òóôõö",
	'u': "ùúûü",
	'c': "ç",
	'n': "ñ",
	'y': "ýÿ",
	'A': "ÀÁÂÃÄÅ",
	'E': "ÈÉÊË",
	'I': "ÌÍÎÏ",
	'O': "ÒÓÔÕÖ",
	'U': "ÙÚÛÜ",
	'C': "Ç",
	'N': "Ñ",
	'Y': "Ý",
}

// fold is indexed by the continuation byte minus 0x80. Zero means the letter
// has no fallback and becomes '?'.
var fold [64]byte

func init() {
	for ascii, group := range accentGroups {
		for _, r := range group {
			b := []byte(string(r))
			if len(b) != 2 || b[0] != 0xC3 {
				panic("lcdtext: accent table entry outside the Latin-1 Supplement lead")
			}
			fold[b[1]-0x80] = ascii
		}
	}
}

// Normalize rewrites any 0xC3-led two-byte sequence to its unaccented ASCII
// fallback, or '?' when no fallback is known. All other bytes pass through
// unchanged, so the result is never longer than the input and plain ASCII is
// returned as-is. Normalize is idempotent.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != 0xC3 {
			out = append(out, b)
			continue
		}
		if i+1 >= len(s) {
			out = append(out, '?')
			break
		}
		i++
		cont := s[i]
		if cont < 0x80 || cont >= 0xC0 {
			// Not a continuation byte; the input is not well-formed UTF-8.
			out = append(out, '?')
			continue
		}
		if r := fold[cont-0x80]; r != 0 {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}
