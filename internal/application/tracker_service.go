package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// OutcomeStatus is what one tracker endpoint concluded about an issue.
type OutcomeStatus int

const (
	// OutcomeConfirmed: the endpoint confirmed the issue (and query, if any).
	OutcomeConfirmed OutcomeStatus = iota
	// OutcomeIssueNotFound: the endpoint does not know the issue.
	OutcomeIssueNotFound
	// OutcomeQueryNotMatched: the issue exists but does not satisfy the query.
	OutcomeQueryNotMatched
	// OutcomeFailed: the endpoint could not be consulted.
	OutcomeFailed
)

// EndpointOutcome is one endpoint's verdict for one lookup.
type EndpointOutcome struct {
	Endpoint string
	Status   OutcomeStatus
	Err      error
}

// LookupResult aggregates every consulted endpoint's verdict. Confirmed is
// true as soon as any endpoint confirms, in which case the remaining
// outcomes are whatever was collected before the confirmation.
type LookupResult struct {
	Confirmed bool
	Outcomes  []EndpointOutcome
}

// LookupError is returned when every consulted endpoint failed, carrying
// each endpoint's reason.
type LookupError struct {
	Outcomes []EndpointOutcome
}

func (e *LookupError) Error() string {
	reasons := make([]string, 0, len(e.Outcomes))
	for _, o := range e.Outcomes {
		reasons = append(reasons, o.Endpoint+": "+outcomeReason(o))
	}
	return "tracker lookup errors: " + strings.Join(reasons, ", ")
}

// ValidationErrors renders one actionable error per failed endpoint.
func (e *LookupError) ValidationErrors() []domain.ValidationError {
	errs := make([]domain.ValidationError, 0, len(e.Outcomes))
	for _, o := range e.Outcomes {
		errs = append(errs, domain.NewValidationError("%s: %s", o.Endpoint, outcomeReason(o)))
	}
	return errs
}

// outcomeReason maps an endpoint outcome to the text shown to the pusher.
// Authentication failures carry the re-link URL so the error is actionable.
func outcomeReason(o EndpointOutcome) string {
	switch o.Status {
	case OutcomeIssueNotFound:
		return "JIRA Issue does not exist"
	case OutcomeQueryNotMatched:
		return "JIRA Issue does not match JQL Query"
	}

	var authErr *domain.AuthenticationError
	var queryErr *domain.QuerySyntaxError
	var statusErr *domain.StatusError

	switch {
	case errors.As(o.Err, &authErr):
		if authErr.AuthURL != "" {
			return fmt.Sprintf("Could not authenticate. Visit %s to link your account to your JIRA account",
				authErr.AuthURL)
		}
		return "Could not authenticate with JIRA"
	case errors.As(o.Err, &queryErr):
		return queryErr.Error()
	case errors.As(o.Err, &statusErr):
		return statusErr.Error()
	default:
		return fmt.Sprintf("Internal error: %v. Check server logs for details.", o.Err)
	}
}

// TrackerService fans lookups out over the linked tracker endpoints and
// aggregates partial failures. An issue is accepted if any endpoint confirms
// it; endpoint failures are only surfaced when no endpoint succeeds.
type TrackerService struct {
	registry domain.TrackerRegistry
	strategy domain.LinkStrategy
	timeout  time.Duration
}

// NewTrackerService creates a TrackerService. The strategy decides whether
// all linked endpoints or only the primary one are consulted; timeout bounds
// each individual endpoint call.
func NewTrackerService(registry domain.TrackerRegistry, strategy domain.LinkStrategy, timeout time.Duration) *TrackerService {
	return &TrackerService{registry: registry, strategy: strategy, timeout: timeout}
}

func (s *TrackerService) endpoints() []domain.TrackerEndpoint {
	eps := s.registry.LinkedEndpoints()
	if s.strategy == domain.LinkStrategyPrimaryOnly && len(eps) > 1 {
		eps = eps[:1]
	}
	return eps
}

// HasLinkedEndpoints reports whether any tracker endpoint is configured.
func (s *TrackerService) HasLinkedEndpoints() bool {
	return len(s.endpoints()) > 0
}

func (s *TrackerService) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// VerifyIssue checks one issue key against the linked endpoints. The issue
// is confirmed when an endpoint reports it exists and, if jql is non-empty,
// the issue also satisfies the query on that same endpoint. Verification
// stops at the first confirming endpoint; every failure seen up to that
// point is kept so a fully failed lookup can report each endpoint's reason.
func (s *TrackerService) VerifyIssue(ctx context.Context, key domain.IssueKey, jql string) LookupResult {
	var result LookupResult

	for _, ep := range s.endpoints() {
		outcome := s.verifyOnEndpoint(ctx, ep, key, jql)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == OutcomeConfirmed {
			result.Confirmed = true
			break
		}
	}

	return result
}

func (s *TrackerService) verifyOnEndpoint(ctx context.Context, ep domain.TrackerEndpoint, key domain.IssueKey, jql string) EndpointOutcome {
	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	outcome := EndpointOutcome{Endpoint: ep.Name()}

	exists, err := ep.IssueExists(callCtx, key)
	if err != nil {
		slog.Debug("issue existence check failed",
			"endpoint", ep.Name(), "issue", key.FullyQualified(), "error", err)
		outcome.Status = OutcomeFailed
		outcome.Err = err
		return outcome
	}
	if !exists {
		outcome.Status = OutcomeIssueNotFound
		return outcome
	}

	if jql == "" {
		outcome.Status = OutcomeConfirmed
		return outcome
	}

	matches, err := ep.IssueMatchesQuery(callCtx, jql, key)
	switch {
	case errors.Is(err, domain.ErrIssueNotFound):
		// Older servers reject the combined query with an error naming the
		// issue instead of returning an empty result. On a mixed-version
		// multi-tracker installation that only means this endpoint does not
		// host the issue.
		outcome.Status = OutcomeIssueNotFound
	case err != nil:
		outcome.Status = OutcomeFailed
		outcome.Err = err
	case matches:
		outcome.Status = OutcomeConfirmed
	default:
		outcome.Status = OutcomeQueryNotMatched
	}

	return outcome
}

// ProjectExists reports whether any linked endpoint knows the project key.
// It returns a *LookupError when every endpoint failed, since in that case
// nothing can be said about the project either way.
func (s *TrackerService) ProjectExists(ctx context.Context, projectKey string) (bool, error) {
	var failed []EndpointOutcome
	sawAnswer := false

	for _, ep := range s.endpoints() {
		callCtx, cancel := s.callCtx(ctx)
		exists, err := ep.ProjectExists(callCtx, projectKey)
		cancel()

		if err != nil {
			failed = append(failed, EndpointOutcome{Endpoint: ep.Name(), Status: OutcomeFailed, Err: err})
			continue
		}
		if exists {
			return true, nil
		}
		sawAnswer = true
	}

	if !sawAnswer && len(failed) > 0 {
		return false, &LookupError{Outcomes: failed}
	}

	return false, nil
}

// ValidateQuery asks the linked endpoints whether jql is syntactically
// valid. Any endpoint rejecting it makes it invalid; when no endpoint can
// answer at all, a *LookupError is returned.
func (s *TrackerService) ValidateQuery(ctx context.Context, jql string) (bool, error) {
	var failed []EndpointOutcome
	sawAnswer := false

	for _, ep := range s.endpoints() {
		callCtx, cancel := s.callCtx(ctx)
		valid, err := ep.ValidateQuery(callCtx, jql)
		cancel()

		if err != nil {
			failed = append(failed, EndpointOutcome{Endpoint: ep.Name(), Status: OutcomeFailed, Err: err})
			continue
		}
		if !valid {
			return false, nil
		}
		sawAnswer = true
	}

	if !sawAnswer && len(failed) > 0 {
		return false, &LookupError{Outcomes: failed}
	}

	return sawAnswer, nil
}
