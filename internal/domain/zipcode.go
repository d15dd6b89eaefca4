package domain

import "strings"

// NormalizeZIP canonicalizes a postal code for joining. The vehicle extract
// serializes postal codes as floats ("98101.0") while the station extract uses
// integers ("98101"); both must compare equal. Any trailing ".<digits>"
// artifact is stripped. Values that are missing or malformed are returned
// trimmed but otherwise untouched; they group under their literal value and
// simply fail to match anything downstream.
func NormalizeZIP(code string) string {
	code = strings.TrimSpace(code)

	dot := strings.IndexByte(code, '.')
	if dot < 0 {
		return code
	}
	for _, r := range code[dot+1:] {
		if r < '0' || r > '9' {
			return code
		}
	}
	return code[:dot]
}
