// Package normalizer locates the borrower name inside the free-text columns
// of a staged settlement row. The raw extraction has no borrower column: the
// name rides along inside either the description or the sub-broker text.
package normalizer

import (
	"regexp"
	"strings"
)

// BorrowerExtractor is the pluggable heuristic that pulls a borrower name out
// of the two free-text fields. It returns the extracted name (empty when
// nothing matched) together with the fields with the matched text removed.
// Alternate heuristics can be substituted without touching the pipeline.
type BorrowerExtractor interface {
	Extract(description, subBroker string) (name, cleanDescription, cleanSubBroker string)
}

// uppercaseRun matches a name token: two or more consecutive uppercase
// letters. Multiple tokens are joined with single spaces.
var uppercaseRun = regexp.MustCompile(`[A-Z]{2,}`)

// UppercaseRunExtractor is the default heuristic. The sub-broker field is
// scanned first; the description is only consulted when the sub-broker text
// yields no token. The name more often appears appended to the later column,
// so when both could match, sub-broker wins.
type UppercaseRunExtractor struct{}

// NewUppercaseRunExtractor returns the default borrower-name heuristic.
func NewUppercaseRunExtractor() *UppercaseRunExtractor {
	return &UppercaseRunExtractor{}
}

// Extract implements BorrowerExtractor. A row with no uppercase run in
// either field keeps both fields untouched and gets an empty name; that is
// not an error.
func (e *UppercaseRunExtractor) Extract(description, subBroker string) (string, string, string) {
	if name, rest, ok := takeName(subBroker); ok {
		return name, description, rest
	}
	if name, rest, ok := takeName(description); ok {
		return name, rest, subBroker
	}
	return "", description, subBroker
}

// takeName extracts all name tokens from s, removes the matched text and
// collapses residual whitespace.
func takeName(s string) (name, rest string, ok bool) {
	tokens := uppercaseRun.FindAllString(s, -1)
	if len(tokens) == 0 {
		return "", s, false
	}
	name = strings.Join(tokens, " ")
	rest = strings.Join(strings.Fields(uppercaseRun.ReplaceAllString(s, "")), " ")
	return name, rest, true
}
