package extract

import (
	"regexp"
	"strings"
)

// numberScanWindow is how many words past the target the number capture
// inspects before giving up.
const numberScanWindow = 3

// numberRe matches the first maximal numeric substring: digits with
// optional comma thousands separators, an optional decimal part, and an
// optional leading sign.
var numberRe = regexp.MustCompile(`-?\d+(?:,\d{3})*(?:\.\d+)?`)

// firstNumber returns the canonical form of the first numeric substring of
// s. Canonicalization policy: leading currency symbols ($, €, £) are
// stripped, comma thousands separators removed, the decimal point and a
// leading minus kept. Parentheses are not interpreted as negation.
func firstNumber(s string) (string, bool) {
	s = strings.TrimLeft(s, "$€£ ")
	match := numberRe.FindString(s)
	if match == "" {
		return "", false
	}
	return strings.ReplaceAll(match, ",", ""), true
}
