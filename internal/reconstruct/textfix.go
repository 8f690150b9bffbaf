package reconstruct

import "regexp"

// maxFixPasses caps the repeated application of the fix rules so a
// pathological rule set always terminates.
const maxFixPasses = 10

// textFix is one ordered (pattern, replacement) spacing repair
type textFix struct {
	pattern     *regexp.Regexp
	replacement string
}

// textFixes repair concatenation artifacts in already-tokenized text when
// character geometry is unavailable. They trade precision for working on
// plain text: each rule targets a boundary that machine-generated PDFs
// commonly collapse.
var textFixes = []textFix{
	// Letter running straight into a digit: "Invoice2024" -> "Invoice 2024"
	{regexp.MustCompile(`([a-zA-Z])(\d)`), "$1 $2"},
	// Two amounts glued at a decimal boundary: "10.00200.00" -> "10.00 200.00"
	{regexp.MustCompile(`(\.\d{2})(\d)`), "$1 $2"},
	// camelCase seam between words: "TotalAmount" -> "Total Amount"
	{regexp.MustCompile(`([a-z])([A-Z])`), "$1 $2"},
}

// FixSpacing applies the degraded-mode spacing repairs to a line of text,
// rerunning the rule list until no rule fires or the pass cap is reached.
func FixSpacing(line string) string {
	for pass := 0; pass < maxFixPasses; pass++ {
		fixed := line
		for _, f := range textFixes {
			fixed = f.pattern.ReplaceAllString(fixed, f.replacement)
		}
		if fixed == line {
			return line
		}
		line = fixed
	}
	return line
}
