package pagseguro

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ConvertEncoding re-encodes every field value from UTF-8 to ISO-8859-1,
// which is what the gateway expects on the wire. Values that are not valid
// UTF-8 are assumed to be converted already and pass through unchanged, so
// applying the conversion twice is harmless.
func ConvertEncoding(fields map[string]string) map[string]string {
	converted := make(map[string]string, len(fields))
	for key, value := range fields {
		converted[key] = toLatin1(value)
	}
	return converted
}

func toLatin1(value string) string {
	if !utf8.ValidString(value) {
		return value
	}

	// Runes outside Latin-1 have no representation; degrade them rather
	// than failing the whole dispatch.
	t := transform.Chain(
		runes.Map(func(r rune) rune {
			if r > 0xFF {
				return '?'
			}
			return r
		}),
		charmap.ISO8859_1.NewEncoder(),
	)

	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}
