package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "yacc",
		Short:         "Yet another commit checker",
		Long:          "YACC gates pushes on a git server: it validates every new commit against configurable policies for committer identity, commit message shape, branch naming, and linked JIRA issues.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newHookCmd())
	cmd.AddCommand(newCheckConfigCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
