package clinic

import "strings"

// NormalizePhone canonicalizes a phone number for equality comparison.
// All non-digit characters are stripped, then leading zeros, so trunk-
// prefix variants ("0414 364 374", "414-364-374") compare equal. Empty
// or digit-free input yields "".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}
