// Package config loads validation settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads a settings file and folds environment overrides on top.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads settings from path and rejects invalid configurations. A
// missing file yields the defaults, so a repository without configuration
// accepts every push.
func (l *YAMLLoader) Load(path string) (domain.Settings, error) {
	settings, err := l.Read(path)
	if err != nil {
		return domain.Settings{}, err
	}

	if fieldErrs := settings.Validate(); len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fe.String())
		}
		return domain.Settings{}, fmt.Errorf("invalid %s: %s", path, strings.Join(msgs, "; "))
	}

	return settings, nil
}

// Read parses settings from path without validating them, for tooling that
// wants to report every field error itself.
func (l *YAMLLoader) Read(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(&settings)
			return settings, nil
		}
		return domain.Settings{}, err
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnvOverrides(&settings)

	return settings, nil
}

// Environment variables override the file, so a hosting service can force a
// policy across repositories without touching per-repo files. Booleans
// accept "true"/"on" and "false"/"off", matching common hook-config
// conventions; anything else leaves the file's value alone rather than
// silently disabling a policy.
var envOverrides = []struct {
	name  string
	apply func(*domain.Settings, string)
}{
	{"YACC_REQUIRE_MATCHING_COMMITTER_NAME", func(s *domain.Settings, v string) { setBool(&s.RequireMatchingCommitterName, v) }},
	{"YACC_REQUIRE_MATCHING_COMMITTER_EMAIL", func(s *domain.Settings, v string) { setBool(&s.RequireMatchingCommitterEmail, v) }},
	{"YACC_REQUIRE_JIRA_ISSUE", func(s *domain.Settings, v string) { setBool(&s.RequireJiraIssue, v) }},
	{"YACC_EXCLUDE_MERGE_COMMITS", func(s *domain.Settings, v string) { setBool(&s.ExcludeMergeCommits, v) }},
	{"YACC_EXCLUDE_SERVICE_USER_COMMITS", func(s *domain.Settings, v string) { setBool(&s.ExcludeServiceUserCommits, v) }},
	{"YACC_COMMIT_MESSAGE_REGEX", func(s *domain.Settings, v string) { s.CommitMessageRegex = v }},
	{"YACC_BRANCH_NAME_REGEX", func(s *domain.Settings, v string) { s.BranchNameRegex = v }},
	{"YACC_ISSUE_JQL_MATCHER", func(s *domain.Settings, v string) { s.IssueJQLMatcher = v }},
}

func applyEnvOverrides(s *domain.Settings) {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			o.apply(s, v)
		}
	}
}

func setBool(target *bool, v string) {
	switch v {
	case "true", "on":
		*target = true
	case "false", "off":
		*target = false
	}
}
