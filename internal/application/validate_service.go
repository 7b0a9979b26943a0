package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain/check"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain/report"
)

// maxConcurrentCommitChecks bounds the per-ref worker pool so one slow
// tracker endpoint cannot serialize a large push behind a single request.
const maxConcurrentCommitChecks = 4

// PushResult is the decision for one push.
type PushResult struct {
	Accepted bool
	Errors   []domain.ValidationError
	// Message is the rendered rejection report, empty when accepted.
	Message string
}

// ValidateService runs the full rule pipeline for a push: compute new
// commits per ref change, check each commit, and aggregate everything into
// one ordered error list.
type ValidateService struct {
	commits *CommitsService
	tracker *TrackerService
	users   domain.UserProvider
}

// NewValidateService wires the orchestrator.
func NewValidateService(commits *CommitsService, tracker *TrackerService, users domain.UserProvider) *ValidateService {
	return &ValidateService{
		commits: commits,
		tracker: tracker,
		users:   users,
	}
}

// CheckPush validates every ref change in order and renders the rejection
// report when any policy is violated. A returned error means repository
// state could not be read; the caller must reject the push but the failure
// is not a policy violation.
func (s *ValidateService) CheckPush(ctx context.Context, settings domain.Settings, refChanges []domain.RefChange) (*PushResult, error) {
	var errors []domain.ValidationError

	for _, refChange := range refChanges {
		refErrors, err := s.CheckRefChange(ctx, settings, refChange)
		if err != nil {
			return nil, err
		}

		errors = append(errors, domain.PrependAll(refErrors, refChange.RefID)...)
	}

	if len(errors) == 0 {
		slog.Debug("push allowed")
		return &PushResult{Accepted: true}, nil
	}

	slog.Debug("push rejected", "errors", len(errors))

	return &PushResult{
		Accepted: false,
		Errors:   errors,
		Message:  report.NewBuilder(settings).Render(errors),
	}, nil
}

// CheckRefChange validates one ref change: the branch name first, then every
// new commit. Commit errors are prefixed with the commit id; the ref id
// prefix is added by CheckPush.
func (s *ValidateService) CheckRefChange(ctx context.Context, settings domain.Settings, refChange domain.RefChange) ([]domain.ValidationError, error) {
	if refChange.Type == domain.ChangeTypeDelete {
		return nil, nil
	}

	slog.Debug("checking ref change",
		"ref", refChange.RefID, "from", refChange.FromHash,
		"to", refChange.ToHash, "type", refChange.Type)

	errors := check.BranchName(settings, refChange.RefID)

	commits, err := s.commits.NewCommits(refChange)
	if err != nil {
		return nil, fmt.Errorf("computing new commits for %s: %w", refChange.RefID, err)
	}

	// Commits are independent; check them in a bounded pool, keeping the
	// differ's ordering for the report.
	results := make([][]domain.ValidationError, len(commits))
	sem := make(chan struct{}, maxConcurrentCommitChecks)
	var wg sync.WaitGroup

	checkMessages := !refChange.IsTag()

	for i, commit := range commits {
		i, commit := i, commit
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = domain.PrependAll(
				s.checkCommit(ctx, settings, commit, checkMessages), commit.ID)
		}()
	}
	wg.Wait()

	for _, r := range results {
		errors = append(errors, r...)
	}

	return errors, nil
}

// checkCommit runs every commit-scope check. Tag pseudo-commits only get
// identity checks (checkMessages is false for them). Issue verification runs
// last and only on an otherwise clean commit, because key extraction may
// depend on the message regex's capture group.
func (s *ValidateService) checkCommit(ctx context.Context, settings domain.Settings, commit domain.Commit, checkMessages bool) []domain.ValidationError {
	slog.Debug("checking commit",
		"id", commit.ID, "name", commit.Committer.Name,
		"email", commit.Committer.Email, "message", commit.Message)

	var errors []domain.ValidationError

	user, err := s.users.CurrentUser()
	if err != nil {
		slog.Warn("could not resolve authenticated user, skipping committer checks", "error", err)
		user = nil
	}

	if user == nil {
		slog.Warn("unauthenticated user is committing, skipping committer checks")
	} else if !user.IsService {
		// Service principals use key comments as names and have no email;
		// neither is worth validating.
		errors = append(errors, check.CommitterEmail(settings, commit, *user)...)
		errors = append(errors, check.CommitterName(settings, commit, *user)...)
	}

	if checkMessages && !check.IsExcluded(settings, commit, user) {
		errors = append(errors, check.CommitMessageRegex(settings, commit)...)

		if len(errors) == 0 {
			errors = append(errors, s.checkJiraIssues(ctx, settings, commit)...)
		}
	}

	return errors
}

func (s *ValidateService) checkJiraIssues(ctx context.Context, settings domain.Settings, commit domain.Commit) []domain.ValidationError {
	if !settings.RequireJiraIssue {
		return nil
	}

	if !s.tracker.HasLinkedEndpoints() {
		return []domain.ValidationError{domain.NewValidationError(
			"Unable to verify JIRA issue because JIRA Application Link does not exist")}
	}

	keys := check.ExtractIssueKeys(settings, commit)
	slog.Debug("extracted issue keys", "commit", commit.ID, "keys", len(keys))

	if settings.IgnoreUnknownIssueProjectKeys {
		known, errs := s.filterUnknownProjects(ctx, keys)
		if errs != nil {
			return errs
		}
		keys = known
	}

	if len(keys) == 0 {
		return []domain.ValidationError{domain.NewValidationError(
			"No JIRA Issue found in commit message.")}
	}

	var errors []domain.ValidationError
	for _, key := range keys {
		errors = append(errors, s.checkJiraIssue(ctx, settings, key)...)
	}

	return errors
}

// filterUnknownProjects drops keys whose project is confirmed absent on
// every endpoint, so message text that merely resembles an issue key (think
// "UTF-8") does not trip the policy. When the trackers cannot be consulted
// at all, the per-endpoint failures are surfaced instead.
func (s *ValidateService) filterUnknownProjects(ctx context.Context, keys []domain.IssueKey) ([]domain.IssueKey, []domain.ValidationError) {
	var known []domain.IssueKey

	for _, key := range keys {
		exists, err := s.tracker.ProjectExists(ctx, key.ProjectKey)
		if err != nil {
			if lookupErr, ok := err.(*LookupError); ok {
				return nil, lookupErr.ValidationErrors()
			}
			return nil, []domain.ValidationError{domain.NewValidationError(
				"Unable to validate JIRA issues due to an unexpected exception. Please see server logs.")}
		}
		if exists {
			known = append(known, key)
		}
	}

	return known, nil
}

// checkJiraIssue translates one key's lookup result into errors. A confirmed
// key yields nothing. A key unknown everywhere yields a single "does not
// exist" error, a key that only failed the query yields a single JQL error,
// and anything else reports each endpoint's specific failure.
func (s *ValidateService) checkJiraIssue(ctx context.Context, settings domain.Settings, key domain.IssueKey) []domain.ValidationError {
	result := s.tracker.VerifyIssue(ctx, key, settings.IssueJQLMatcher)
	if result.Confirmed {
		return nil
	}

	allNotFound := true
	anyFailed := false
	for _, o := range result.Outcomes {
		if o.Status != OutcomeIssueNotFound {
			allNotFound = false
		}
		if o.Status == OutcomeFailed {
			anyFailed = true
		}
	}

	qualified := key.FullyQualified()

	if allNotFound {
		return []domain.ValidationError{domain.NewValidationError(
			"%s: JIRA Issue does not exist", qualified)}
	}

	if !anyFailed {
		return []domain.ValidationError{domain.NewTypedError(domain.ErrorKindIssueJQL,
			"%s: JIRA Issue does not match JQL Query: %s", qualified, settings.IssueJQLMatcher)}
	}

	lookupErr := &LookupError{Outcomes: result.Outcomes}
	return domain.PrependAll(lookupErr.ValidationErrors(), qualified)
}
