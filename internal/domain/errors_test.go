package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

func TestValidationError_PrependText(t *testing.T) {
	err := domain.NewTypedError(domain.ErrorKindCommitRegex, "commit message doesn't match regex: %s", ".*")

	prefixed := err.PrependText("deadbeef")

	assert.Equal(t, domain.ErrorKindCommitRegex, prefixed.Kind, "kind is preserved")
	assert.Equal(t, "deadbeef: commit message doesn't match regex: .*", prefixed.Message)
	// Original is untouched.
	assert.Equal(t, "commit message doesn't match regex: .*", err.Message)
}

func TestNewValidationError_DefaultsToOther(t *testing.T) {
	err := domain.NewValidationError("No JIRA Issue found in commit message.")
	assert.Equal(t, domain.ErrorKindOther, err.Kind)
}

func TestPrependAll(t *testing.T) {
	errs := []domain.ValidationError{
		domain.NewValidationError("first"),
		domain.NewTypedError(domain.ErrorKindBranchName, "second"),
	}

	out := domain.PrependAll(errs, "refs/heads/main")

	assert.Equal(t, "refs/heads/main: first", out[0].Message)
	assert.Equal(t, "refs/heads/main: second", out[1].Message)
	assert.Equal(t, domain.ErrorKindBranchName, out[1].Kind)
}

func TestPrependAll_Empty(t *testing.T) {
	assert.Empty(t, domain.PrependAll(nil, "x"))
}

func TestTrackerErrorTexts(t *testing.T) {
	assert.Equal(t, "unexpected response received. Status code: 502",
		(&domain.StatusError{StatusCode: 502}).Error())

	assert.Equal(t, "authentication with the issue tracker failed",
		(&domain.AuthenticationError{}).Error())
	assert.Equal(t,
		"authentication with the issue tracker failed, visit https://jira/login to authenticate",
		(&domain.AuthenticationError{AuthURL: "https://jira/login"}).Error())

	assert.Equal(t, "bad field, bad operator",
		(&domain.QuerySyntaxError{Messages: []string{"bad field", "bad operator"}}).Error())
}
