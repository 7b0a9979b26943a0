// Package check holds the individual policy checks run against a commit or
// ref. Every check is a pure function from (settings, input) to a list of
// validation errors; an empty list means the check passed.
package check

import (
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// CommitterName verifies the commit's committer name against the
// authenticated pusher's display name, case-insensitively. The pusher's
// name is stripped of git ident crud first so that a display name git
// would rewrite still matches what ends up in the commit.
func CommitterName(settings domain.Settings, commit domain.Commit, user domain.User) []domain.ValidationError {
	if !settings.RequireMatchingCommitterName {
		return nil
	}

	name := domain.RemoveGitCrud(user.Name)
	if strings.EqualFold(commit.Committer.Name, name) {
		return nil
	}

	return []domain.ValidationError{domain.NewTypedError(domain.ErrorKindCommitterName,
		"expected committer name '%s' but found '%s'", name, commit.Committer.Name)}
}

// CommitterEmail verifies the commit's committer email against the
// authenticated pusher's email, case-insensitively. Pushers without a known
// email (some service principals) are skipped rather than rejected.
func CommitterEmail(settings domain.Settings, commit domain.Commit, user domain.User) []domain.ValidationError {
	if !settings.RequireMatchingCommitterEmail {
		return nil
	}

	if user.Email == "" {
		return nil
	}

	if strings.EqualFold(commit.Committer.Email, user.Email) {
		return nil
	}

	return []domain.ValidationError{domain.NewTypedError(domain.ErrorKindCommitterEmail,
		"expected committer email '%s' but found '%s'", user.Email, commit.Committer.Email)}
}
