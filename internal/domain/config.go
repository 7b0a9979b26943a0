package domain

import (
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that YAML decodes from strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler using time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LinkStrategy selects which configured tracker endpoints are consulted.
type LinkStrategy string

const (
	// LinkStrategyPrimaryOnly consults only the first configured endpoint.
	LinkStrategyPrimaryOnly LinkStrategy = "primary_only"
	// LinkStrategyAllLinked consults every configured endpoint and accepts
	// an issue confirmed by any one of them.
	LinkStrategyAllLinked LinkStrategy = "all_linked"
)

// EndpointConfig describes one tracker connection.
type EndpointConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
	// AuthURL is shown to pushers when the endpoint rejects our
	// credentials, so they know where to go to re-link their account.
	AuthURL string `yaml:"auth_url"`
}

// Settings is the full validation policy for a repository, loaded once per
// push and never mutated.
type Settings struct {
	RequireMatchingCommitterName  bool   `yaml:"require_matching_committer_name"`
	RequireMatchingCommitterEmail bool   `yaml:"require_matching_committer_email"`
	CommitMessageRegex            string `yaml:"commit_message_regex"`
	BranchNameRegex               string `yaml:"branch_name_regex"`

	ExcludeMergeCommits       bool   `yaml:"exclude_merge_commits"`
	ExcludeServiceUserCommits bool   `yaml:"exclude_service_user_commits"`
	ExcludeByRegex            string `yaml:"exclude_by_regex"`

	RequireJiraIssue              bool   `yaml:"require_jira_issue"`
	IgnoreUnknownIssueProjectKeys bool   `yaml:"ignore_unknown_issue_project_keys"`
	IssueJQLMatcher               string `yaml:"issue_jql_matcher"`

	LinkStrategy   LinkStrategy     `yaml:"link_strategy"`
	Endpoints      []EndpointConfig `yaml:"endpoints"`
	TrackerTimeout Duration         `yaml:"tracker_timeout"`

	ErrorMessageHeader string `yaml:"error_message_header"`
	ErrorMessageFooter string `yaml:"error_message_footer"`
	// ErrorMessages maps an ErrorKind name to an elaboration appended
	// under every rendered error of that kind.
	ErrorMessages map[string]string `yaml:"error_messages"`
}

// DefaultSettings returns the policy applied when no configuration exists:
// every check disabled, all linked endpoints consulted, a 10s tracker
// timeout.
func DefaultSettings() Settings {
	return Settings{
		LinkStrategy:   LinkStrategyAllLinked,
		TrackerTimeout: Duration(10 * time.Second),
	}
}

// FieldError reports one invalid settings field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// settingsValidators are independent checks composed by Validate. Each one
// inspects a single concern and knows nothing about the others.
var settingsValidators = []func(Settings) []FieldError{
	validateCommitMessageRegex,
	validateBranchNameRegex,
	validateExcludeByRegex,
	validateLinkStrategy,
	validateEndpoints,
	validateTrackerRequirements,
}

// Validate runs every settings validator and returns all field errors found.
func (s Settings) Validate() []FieldError {
	var errs []FieldError
	for _, v := range settingsValidators {
		errs = append(errs, v(s)...)
	}
	return errs
}

func validateCommitMessageRegex(s Settings) []FieldError {
	return validateRegexField("commit_message_regex", s.CommitMessageRegex)
}

func validateBranchNameRegex(s Settings) []FieldError {
	return validateRegexField("branch_name_regex", s.BranchNameRegex)
}

func validateExcludeByRegex(s Settings) []FieldError {
	return validateRegexField("exclude_by_regex", s.ExcludeByRegex)
}

func validateRegexField(field, pattern string) []FieldError {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return []FieldError{{Field: field, Message: "invalid regex: " + err.Error()}}
	}
	return nil
}

func validateLinkStrategy(s Settings) []FieldError {
	switch s.LinkStrategy {
	case "", LinkStrategyPrimaryOnly, LinkStrategyAllLinked:
		return nil
	}
	return []FieldError{{
		Field: "link_strategy",
		Message: fmt.Sprintf("must be %q or %q", LinkStrategyPrimaryOnly,
			LinkStrategyAllLinked),
	}}
}

func validateEndpoints(s Settings) []FieldError {
	var errs []FieldError
	for i, ep := range s.Endpoints {
		if ep.Name == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("endpoints[%d].name", i),
				Message: "endpoint name is required",
			})
		}
		if ep.URL == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("endpoints[%d].url", i),
				Message: "endpoint url is required",
			})
		}
	}
	return errs
}

func validateTrackerRequirements(s Settings) []FieldError {
	var errs []FieldError
	if s.RequireJiraIssue && len(s.Endpoints) == 0 {
		errs = append(errs, FieldError{
			Field:   "require_jira_issue",
			Message: "cannot be enabled without at least one tracker endpoint",
		})
	}
	if s.IssueJQLMatcher != "" && len(s.Endpoints) == 0 {
		errs = append(errs, FieldError{
			Field:   "issue_jql_matcher",
			Message: "cannot be set without at least one tracker endpoint",
		})
	}
	return errs
}

// CustomMessage returns the configured elaboration for an error kind, or "".
func (s Settings) CustomMessage(kind ErrorKind) string {
	return s.ErrorMessages[string(kind)]
}
