package check

import (
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// BranchName verifies a branch's short name fully matches the configured
// regex. Refs outside the branch namespace are exempt, as is an unset regex.
func BranchName(settings domain.Settings, refID string) []domain.ValidationError {
	if settings.BranchNameRegex == "" {
		return nil
	}

	if !strings.HasPrefix(refID, domain.BranchRefPrefix) {
		return nil
	}

	branchName := strings.TrimPrefix(refID, domain.BranchRefPrefix)

	re, err := compileAnchored(settings.BranchNameRegex, false)
	if err != nil {
		return []domain.ValidationError{domain.NewValidationError(
			"branch name regex is invalid: %s", settings.BranchNameRegex)}
	}

	if re.MatchString(branchName) {
		return nil
	}

	return []domain.ValidationError{domain.NewTypedError(domain.ErrorKindBranchName,
		"Invalid branch name. '%s' does not match regex '%s'",
		branchName, settings.BranchNameRegex)}
}
