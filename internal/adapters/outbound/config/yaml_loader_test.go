package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/config"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yacc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
require_matching_committer_name: true
require_matching_committer_email: true
commit_message_regex: '[A-Z]+-[0-9]+: .*'
branch_name_regex: '(main|feature/.*)'
exclude_merge_commits: true
require_jira_issue: true
issue_jql_matcher: assignee is not empty
link_strategy: primary_only
tracker_timeout: 5s
endpoints:
  - name: primary
    url: https://jira.example.com
    username: bot
    token: secret
    auth_url: https://jira.example.com/login
error_message_header: Nope.
error_messages:
  COMMIT_REGEX: "Messages look like ABC-123: summary"
`)

	settings, err := config.New().Load(path)
	require.NoError(t, err)

	assert.True(t, settings.RequireMatchingCommitterName)
	assert.True(t, settings.RequireMatchingCommitterEmail)
	assert.Equal(t, `[A-Z]+-[0-9]+: .*`, settings.CommitMessageRegex)
	assert.Equal(t, `(main|feature/.*)`, settings.BranchNameRegex)
	assert.True(t, settings.ExcludeMergeCommits)
	assert.True(t, settings.RequireJiraIssue)
	assert.Equal(t, "assignee is not empty", settings.IssueJQLMatcher)
	assert.Equal(t, domain.LinkStrategyPrimaryOnly, settings.LinkStrategy)
	assert.Equal(t, 5*time.Second, settings.TrackerTimeout.Std())
	require.Len(t, settings.Endpoints, 1)
	assert.Equal(t, "primary", settings.Endpoints[0].Name)
	assert.Equal(t, "https://jira.example.com", settings.Endpoints[0].URL)
	assert.Equal(t, "https://jira.example.com/login", settings.Endpoints[0].AuthURL)
	assert.Equal(t, "Nope.", settings.ErrorMessageHeader)
	assert.Equal(t, "Messages look like ABC-123: summary", settings.CustomMessage(domain.ErrorKindCommitRegex))
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := config.New().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoad_InvalidSettingsRejected(t *testing.T) {
	path := writeConfig(t, "commit_message_regex: '(unclosed'\n")

	_, err := config.New().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit_message_regex")
}

func TestLoad_MalformedYAMLRejected(t *testing.T) {
	path := writeConfig(t, ": not yaml at all\n\t")

	_, err := config.New().Load(path)
	require.Error(t, err)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeConfig(t, "commit_message_regex: '(unclosed'\n")

	settings, err := config.New().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "(unclosed", settings.CommitMessageRegex)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
require_jira_issue: false
commit_message_regex: 'from-file'
endpoints:
  - name: primary
    url: https://jira.example.com
`)

	t.Setenv("YACC_REQUIRE_JIRA_ISSUE", "on")
	t.Setenv("YACC_COMMIT_MESSAGE_REGEX", "from-env")
	t.Setenv("YACC_BRANCH_NAME_REGEX", "")

	settings, err := config.New().Load(path)
	require.NoError(t, err)

	assert.True(t, settings.RequireJiraIssue, "env overrides the file")
	assert.Equal(t, "from-env", settings.CommitMessageRegex)
	assert.Empty(t, settings.BranchNameRegex, "empty env values are ignored")
}

func TestEnvBoolOverrides(t *testing.T) {
	t.Run("unrecognized value leaves the file's setting alone", func(t *testing.T) {
		path := writeConfig(t, "exclude_merge_commits: true\n")
		t.Setenv("YACC_EXCLUDE_MERGE_COMMITS", "yes")

		settings, err := config.New().Load(path)
		require.NoError(t, err)
		assert.True(t, settings.ExcludeMergeCommits)
	})

	t.Run("off disables a file-enabled flag", func(t *testing.T) {
		path := writeConfig(t, "exclude_merge_commits: true\n")
		t.Setenv("YACC_EXCLUDE_MERGE_COMMITS", "off")

		settings, err := config.New().Load(path)
		require.NoError(t, err)
		assert.False(t, settings.ExcludeMergeCommits)
	})
}
