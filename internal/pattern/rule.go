// Package pattern defines extraction rules and parses their textual form,
// `keyword:direction:distance:type`.
package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Direction is the movement applied relative to a keyword anchor
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Above Direction = "above"
	Below Direction = "below"
)

// ExtractType selects what is captured at the resolved target
type ExtractType string

const (
	// TypeWord captures the single target word
	TypeWord ExtractType = "word"
	// TypeNumber captures the first numeric substring at the target
	TypeNumber ExtractType = "number"
	// TypeLine captures the full target line
	TypeLine ExtractType = "line"
	// TypeText captures the remaining words of the line from the target
	TypeText ExtractType = "text"
)

// Rule is a parsed extraction instruction. Immutable after parsing.
type Rule struct {
	Keyword     string
	Direction   Direction
	Distance    int
	ExtractType ExtractType
	// Header is the output column label; defaults to the keyword.
	Header string
}

// ParseError reports a malformed rule line together with its source
// location. A ParseError skips the offending rule only; other rules in
// the same file still apply.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rule line %d: %s: %q", e.Line, e.Reason, e.Input)
	}
	return fmt.Sprintf("rule: %s: %q", e.Reason, e.Input)
}

// Parse parses a single rule of the form keyword:direction:distance:type.
// Leading and trailing whitespace around each field is trimmed. The keyword
// keeps any internal spaces and its trailing colon handling is left to the
// extractor.
func Parse(s string) (Rule, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return Rule{}, &ParseError{Input: s, Reason: "expected 4 colon-separated fields"}
	}

	keyword := strings.TrimSpace(parts[0])
	if keyword == "" {
		return Rule{}, &ParseError{Input: s, Reason: "keyword cannot be empty"}
	}

	direction := Direction(strings.TrimSpace(strings.ToLower(parts[1])))
	switch direction {
	case Left, Right, Above, Below:
	default:
		return Rule{}, &ParseError{Input: s, Reason: "direction must be one of: left, right, above, below"}
	}

	distance, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Rule{}, &ParseError{Input: s, Reason: "distance must be an integer"}
	}
	if distance < 0 {
		return Rule{}, &ParseError{Input: s, Reason: "distance cannot be negative"}
	}

	extractType := ExtractType(strings.TrimSpace(strings.ToLower(parts[3])))
	switch extractType {
	case TypeWord, TypeNumber, TypeLine, TypeText:
	default:
		return Rule{}, &ParseError{Input: s, Reason: "extract type must be one of: word, number, line, text"}
	}

	return Rule{
		Keyword:     keyword,
		Direction:   direction,
		Distance:    distance,
		ExtractType: extractType,
		Header:      keyword,
	}, nil
}

// ParseAll parses a list of rule strings, failing on the first malformed
// entry. Used for rules supplied directly on the command line.
func ParseAll(inputs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(inputs))
	for _, s := range inputs {
		rule, err := Parse(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseReader parses rules from a reader, one per line. Blank lines and
// lines starting with '#' are skipped. Malformed lines are collected as
// ParseErrors and do not prevent later rules from parsing.
func ParseReader(r io.Reader) ([]Rule, []*ParseError, error) {
	var rules []Rule
	var parseErrs []*ParseError

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := Parse(line)
		if err != nil {
			var pe *ParseError
			if e, ok := err.(*ParseError); ok {
				pe = e
			} else {
				pe = &ParseError{Input: line, Reason: err.Error()}
			}
			pe.Line = lineNum
			parseErrs = append(parseErrs, pe)
			continue
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rules: %w", err)
	}
	return rules, parseErrs, nil
}

// ParseFile parses a rules file with ParseReader semantics
func ParseFile(path string) ([]Rule, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open rules file: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}
