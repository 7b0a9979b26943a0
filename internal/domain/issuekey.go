package domain

import (
	"fmt"
	"regexp"
)

// issueKeyPattern matches standard tracker issue keys, with the project key
// and issue id in capture groups 1 and 2.
var issueKeyPattern = regexp.MustCompile(`([A-Z][A-Z_0-9]+)-([0-9]+)`)

// IssueKey is a tracker issue identifier such as ABC-123.
type IssueKey struct {
	ProjectKey string
	IssueID    string
}

// InvalidIssueKeyError reports text that does not contain a well-formed
// issue key.
type InvalidIssueKeyError struct {
	Text string
}

func (e *InvalidIssueKeyError) Error() string {
	return fmt.Sprintf("invalid issue key: %q", e.Text)
}

// ParseIssueKeys scans text for every substring matching the issue key
// format, in order of appearance. Duplicates are kept.
func ParseIssueKeys(text string) []IssueKey {
	var keys []IssueKey
	for _, m := range issueKeyPattern.FindAllStringSubmatch(text, -1) {
		keys = append(keys, IssueKey{ProjectKey: m[1], IssueID: m[2]})
	}
	return keys
}

// NewIssueKey parses a single issue key from text. Like ParseIssueKeys it
// takes the first match rather than requiring the whole string to be a key.
func NewIssueKey(text string) (IssueKey, error) {
	m := issueKeyPattern.FindStringSubmatch(text)
	if m == nil {
		return IssueKey{}, &InvalidIssueKeyError{Text: text}
	}
	return IssueKey{ProjectKey: m[1], IssueID: m[2]}, nil
}

// FullyQualified returns the key in its PROJECT-123 form.
func (k IssueKey) FullyQualified() string {
	return k.ProjectKey + "-" + k.IssueID
}

func (k IssueKey) String() string {
	return "IssueKey{" + k.FullyQualified() + "}"
}
