package application

import (
	"context"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// ConfigChecker validates a settings value beyond what the pure field
// validators can see, by probing the configured tracker endpoints.
type ConfigChecker struct {
	tracker *TrackerService
}

// NewConfigChecker creates a ConfigChecker.
func NewConfigChecker(tracker *TrackerService) *ConfigChecker {
	return &ConfigChecker{tracker: tracker}
}

// Check runs the field validators and, when live is set, verifies the
// configured JQL matcher is accepted by the tracker.
func (c *ConfigChecker) Check(ctx context.Context, settings domain.Settings, live bool) []domain.FieldError {
	errs := settings.Validate()

	if !live || settings.IssueJQLMatcher == "" || !c.tracker.HasLinkedEndpoints() {
		return errs
	}

	valid, err := c.tracker.ValidateQuery(ctx, settings.IssueJQLMatcher)
	switch {
	case err != nil:
		errs = append(errs, domain.FieldError{
			Field:   "issue_jql_matcher",
			Message: "unable to validate JQL query with the tracker: " + err.Error(),
		})
	case !valid:
		errs = append(errs, domain.FieldError{
			Field:   "issue_jql_matcher",
			Message: "the JQL query syntax is invalid",
		})
	}

	return errs
}
