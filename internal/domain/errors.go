package domain

import "fmt"

// ErrorKind classifies a validation error so that per-kind custom messages
// can be attached to the rendered report.
type ErrorKind string

const (
	ErrorKindCommitterName  ErrorKind = "COMMITTER_NAME"
	ErrorKindCommitterEmail ErrorKind = "COMMITTER_EMAIL"
	ErrorKindCommitRegex    ErrorKind = "COMMIT_REGEX"
	ErrorKindIssueJQL       ErrorKind = "ISSUE_JQL"
	ErrorKindBranchName     ErrorKind = "BRANCH_NAME"
	ErrorKindOther          ErrorKind = "OTHER"
)

// ValidationError is a single policy violation. Violations are plain values
// collected into ordered lists; they are never returned as Go errors, which
// are reserved for system failures (repository I/O, tracker transport).
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

// NewValidationError builds an ErrorKindOther error.
func NewValidationError(format string, args ...any) ValidationError {
	return NewTypedError(ErrorKindOther, format, args...)
}

// NewTypedError builds an error of an explicit kind.
func NewTypedError(kind ErrorKind, format string, args ...any) ValidationError {
	return ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PrependText returns a copy of the error with "text: " prefixed to the
// message. The kind is preserved.
func (e ValidationError) PrependText(text string) ValidationError {
	return ValidationError{Kind: e.Kind, Message: text + ": " + e.Message}
}

func (e ValidationError) String() string {
	return fmt.Sprintf("ValidationError{kind=%s, message=%q}", e.Kind, e.Message)
}

// PrependAll applies PrependText to every error in errs.
func PrependAll(errs []ValidationError, text string) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.PrependText(text))
	}
	return out
}
