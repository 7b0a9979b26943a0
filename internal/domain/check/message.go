package check

import (
	"regexp"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// compileAnchored compiles pattern so it must match the whole input.
// With multiline set, ^ and $ anchor per line while \A and \z still pin the
// overall match to the full string.
func compileAnchored(pattern string, multiline bool) (*regexp.Regexp, error) {
	anchored := `\A(?:` + pattern + `)\z`
	if multiline {
		anchored = "(?m)" + anchored
	}
	return regexp.Compile(anchored)
}

// CommitMessageRegex verifies the commit message fully matches the
// configured regex. An unset regex passes everything.
func CommitMessageRegex(settings domain.Settings, commit domain.Commit) []domain.ValidationError {
	if settings.CommitMessageRegex == "" {
		return nil
	}

	re, err := compileAnchored(settings.CommitMessageRegex, true)
	if err != nil {
		// Settings validation should have caught this; fail closed.
		return []domain.ValidationError{domain.NewValidationError(
			"commit message regex is invalid: %s", settings.CommitMessageRegex)}
	}

	if re.MatchString(commit.Message) {
		return nil
	}

	return []domain.ValidationError{domain.NewTypedError(domain.ErrorKindCommitRegex,
		"commit message doesn't match regex: %s", settings.CommitMessageRegex)}
}

// IsExcluded reports whether message and issue checks are suppressed for
// this commit. Identity checks are never suppressed by these settings.
func IsExcluded(settings domain.Settings, commit domain.Commit, user *domain.User) bool {
	if settings.ExcludeMergeCommits && commit.IsMerge() {
		return true
	}

	if settings.ExcludeServiceUserCommits && user != nil && user.IsService {
		return true
	}

	if settings.ExcludeByRegex != "" {
		if re, err := regexp.Compile(settings.ExcludeByRegex); err == nil &&
			re.MatchString(commit.Message) {
			return true
		}
	}

	return false
}

// ExtractIssueKeys pulls issue keys from the commit message. When the commit
// message regex is set, fully matches, and defines at least one capture
// group, only group 1 is scanned; this lets a policy restrict where in the
// message issue keys may appear.
func ExtractIssueKeys(settings domain.Settings, commit domain.Commit) []domain.IssueKey {
	message := commit.Message

	if settings.CommitMessageRegex != "" {
		re, err := compileAnchored(settings.CommitMessageRegex, false)
		if err == nil && re.NumSubexp() > 0 {
			if m := re.FindStringSubmatch(message); m != nil {
				message = m[1]
			}
		}
	}

	return domain.ParseIssueKeys(message)
}
