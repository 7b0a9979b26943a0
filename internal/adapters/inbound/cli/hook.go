package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/config"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/envuser"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/gitrepo"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/jira"
	"github.com/yellingatcode/yet-another-commit-checker/internal/application"
)

// errPushRejected only signals the non-zero exit; the report has already
// been written to stderr by then.
var errPushRejected = errors.New("push rejected")

func newHookCmd() *cobra.Command {
	var (
		configPath string
		gitDir     string
	)

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Run as a git pre-receive hook",
		Long:  "Reads ref updates from stdin in the pre-receive format, validates every new commit, and exits non-zero with a report on stderr when the push must be rejected.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHook(cmd, configPath, gitDir)
			if err != nil && !errors.Is(err, errPushRejected) {
				// A push must never be declined silently. Without this the
				// pusher only sees git's generic "pre-receive hook declined".
				fmt.Fprintf(cmd.ErrOrStderr(), "yacc: unable to validate push: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the settings file (defaults to $YACC_CONFIG, then yacc.yaml in the repository)")
	cmd.Flags().StringVar(&gitDir, "git-dir", "", "Path to the repository (defaults to $GIT_DIR, then .)")

	return cmd
}

func runHook(cmd *cobra.Command, configPath, gitDir string) error {
	gitDir = resolveGitDir(gitDir)

	settings, err := config.New().Load(resolveConfigPath(configPath, gitDir))
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	refChanges, err := ParseRefChanges(cmd.InOrStdin())
	if err != nil {
		return err
	}

	reader, err := gitrepo.Open(gitDir)
	if err != nil {
		return err
	}

	tracker := application.NewTrackerService(
		jira.NewRegistry(settings.Endpoints), settings.LinkStrategy, settings.TrackerTimeout.Std())

	svc := application.NewValidateService(
		application.NewCommitsService(reader), tracker, envuser.New())

	// A returned error here means repository state could not be read; the
	// push is rejected, but distinctly from a policy failure.
	result, err := svc.CheckPush(cmd.Context(), settings, refChanges)
	if err != nil {
		return err
	}

	if !result.Accepted {
		fmt.Fprint(cmd.ErrOrStderr(), result.Message)
		return errPushRejected
	}

	return nil
}

func resolveGitDir(gitDir string) string {
	if gitDir != "" {
		return gitDir
	}
	if env := os.Getenv("GIT_DIR"); env != "" {
		return env
	}
	return "."
}

func resolveConfigPath(configPath, gitDir string) string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("YACC_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(gitDir, "yacc.yaml")
}
