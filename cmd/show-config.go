package cmd

import (
	"fmt"
	"io"

	"github.com/git-l10n/pofmt/config"
	"github.com/git-l10n/pofmt/flag"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type showConfigCommand struct {
	cmd *cobra.Command
}

func (v *showConfigCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "show-config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration in YAML.

Values come from command line flags, POFMT_* environment variables,
the config files ~/.pofmt.yaml and <repo-root>/pofmt.yaml (or --config),
and built-in defaults, in that order of precedence.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(cmd.OutOrStdout(), args)
		},
	}
	return v.cmd
}

// effectiveConfig returns the options as resolved from flags, environment
// and config files.
func effectiveConfig() *config.Config {
	lineLength := flag.LineLength()
	multiplier := flag.WideCharMultiplier()
	suppress := flag.SuppressMsgidRewrite()
	spacing := flag.Spacing()
	jobs := flag.Jobs()

	return &config.Config{
		LineLength:               &lineLength,
		WideCharMultiplier:       &multiplier,
		LocaleWideCharMultiplier: flag.LocaleWideCharMultiplier(),
		SuppressMsgidRewrite:     &suppress,
		Spacing:                  &spacing,
		Jobs:                     &jobs,
	}
}

func (v showConfigCommand) Execute(w io.Writer, args []string) error {
	if len(args) != 0 {
		return NewErrorWithUsage("show-config command needs no arguments")
	}

	data, err := yaml.Marshal(effectiveConfig())
	if err != nil {
		return NewStandardErrorF("fail to marshal config: %v", err)
	}
	fmt.Fprint(w, string(data))
	return nil
}

var showConfigCmd = showConfigCommand{}

func init() {
	rootCmd.AddCommand(showConfigCmd.Command())
}
