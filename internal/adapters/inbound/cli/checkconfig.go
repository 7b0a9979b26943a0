package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/config"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/jira"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/tui"
	"github.com/yellingatcode/yet-another-commit-checker/internal/application"
)

func newCheckConfigCmd() *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "check-config <file>",
		Short: "Validate a settings file",
		Long:  "Check a YACC settings file for invalid fields. With --live, the configured JQL matcher is also validated against the linked tracker endpoints.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			settings, err := config.New().Read(path)
			if err != nil {
				return fmt.Errorf("reading settings: %w", err)
			}

			tracker := application.NewTrackerService(
				jira.NewRegistry(settings.Endpoints), settings.LinkStrategy, settings.TrackerTimeout.Std())

			fieldErrs := application.NewConfigChecker(tracker).Check(cmd.Context(), settings, live)

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderConfigCheck(path, fieldErrs))

			if len(fieldErrs) > 0 {
				return fmt.Errorf("configuration is invalid")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Also validate the JQL matcher against the tracker")

	return cmd
}
