package cmd

import (
	"github.com/spf13/cobra"
)

type checkCommand struct {
	cmd *cobra.Command
}

func (v *checkCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "check [path|glob]...",
		Short: "Report po files needing update without writing them",
		Long: `Report po files needing update without writing them.

Same as "pofmt --check": a colored diff is shown for every file that would
be changed. The exit status is 1 if any file needs update or failed to parse.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(cmd, args)
		},
	}
	return v.cmd
}

func (v checkCommand) Execute(cmd *cobra.Command, args []string) error {
	c := newFormatCommand(true)
	c.stdout = cmd.OutOrStdout()
	return c.Execute(args)
}

var checkCmd = checkCommand{}

func init() {
	rootCmd.AddCommand(checkCmd.Command())
}
