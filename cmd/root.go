// Package cmd provides CLI implementations.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/git-l10n/pofmt/config"
	"github.com/git-l10n/pofmt/flag"
	"github.com/git-l10n/pofmt/repository"
	"github.com/git-l10n/pofmt/version"
	log "github.com/sirupsen/logrus"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = rootCommand{}

// errNotFormatted is returned when files were changed or failed to parse.
// The report is already printed, only the exit status is left.
var errNotFormatted = errors.New("some files are not formatted")

// IsNotFormatted returns true if err only means that some files were
// changed or could not be formatted.
func IsNotFormatted(err error) bool {
	return errors.Is(err, errNotFormatted)
}

// errorWithUsage marks an error that should display command usage.
type errorWithUsage struct{ msg string }

func (e errorWithUsage) Error() string { return e.msg }

// NewErrorWithUsage creates an error that should display usage (e.g. argument/flag errors).
func NewErrorWithUsage(a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintln(a...)}
}

// NewErrorWithUsageF creates an error that should display usage.
func NewErrorWithUsageF(format string, a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintf(format, a...)}
}

// NewStandardError creates an error that should not display usage.
func NewStandardError(a ...interface{}) error {
	return fmt.Errorf("%s", fmt.Sprint(a...))
}

// NewStandardErrorF creates an error that should not display usage.
func NewStandardErrorF(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

// IsErrorWithUsage returns true if the error should display command usage.
func IsErrorWithUsage(err error) bool {
	_, ok := err.(errorWithUsage)
	return ok
}

// Response wraps error for subcommand, and is returned from cmd package.
type Response struct {
	// Err contains error returned from the subcommand executed.
	Err error

	// Cmd contains the command object.
	Cmd *cobra.Command
}

// IsUserError returns true if usage should be shown for the error.
func (v Response) IsUserError() bool {
	return IsErrorWithUsage(v.Err)
}

type rootCommand struct {
	cmd *cobra.Command
}

func (v *rootCommand) initLog() {
	f := new(log.TextFormatter)
	f.DisableTimestamp = true
	f.DisableLevelTruncation = true
	log.SetFormatter(f)
	verbose := flag.Verbose()
	quiet := flag.Quiet()
	if verbose == 1 {
		log.SetLevel(log.DebugLevel)
	} else if verbose > 1 {
		log.SetLevel(log.TraceLevel)
	} else if quiet == 1 {
		log.SetLevel(log.WarnLevel)
	} else if quiet > 1 {
		log.SetLevel(log.ErrorLevel)
	}
}

func (v *rootCommand) initRepository() {
	repository.OpenRepository("")
}

// initConfig loads config files. Their values become viper defaults, so
// that flags and environment variables still take precedence.
func (v *rootCommand) initConfig() {
	cfg, err := config.LoadConfig(flag.ConfigFile())
	if err != nil {
		log.Fatal(err)
	}
	applyConfig(cfg)
}

func applyConfig(cfg *config.Config) {
	if cfg.LineLength != nil {
		viper.SetDefault(flag.KeyLineLength, *cfg.LineLength)
	}
	if cfg.WideCharMultiplier != nil {
		viper.SetDefault(flag.KeyWideCharMultiplier, *cfg.WideCharMultiplier)
	}
	if len(cfg.LocaleWideCharMultiplier) > 0 {
		viper.SetDefault(flag.KeyLocaleWideCharMultiplier, cfg.LocaleWideCharMultiplier)
	}
	if cfg.SuppressMsgidRewrite != nil {
		viper.SetDefault(flag.KeySuppressMsgidRewrite, *cfg.SuppressMsgidRewrite)
	}
	if cfg.Spacing != nil {
		viper.SetDefault(flag.KeySpacing, *cfg.Spacing)
	}
	if cfg.Jobs != nil {
		viper.SetDefault(flag.KeyJobs, *cfg.Jobs)
	}
}

// Command represents the base command when called without any subcommands
func (v *rootCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "pofmt [path|glob]...",
		Short: "Format gettext PO files for consistency",
		Long: `Format gettext PO files for consistency.

Each msgid and msgstr is re-wrapped to the line length, unescaped double
quotes are escaped, and optionally spaces are inserted between CJK and
Latin text. Fuzzy entries are left untouched.

A directory argument selects all po files below it, other arguments are
glob patterns ("**" matches any number of directories). Without arguments
the current directory is used.

The exit status is 1 if any file was changed or failed to parse.`,
		Args: cobra.ArbitraryArgs,
		// Let main.go handle error output; do not show usage on every error
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(cmd, args)
		},
	}
	v.cmd.Version = version.Version
	v.cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	// Keep declaration order, which groups the flags in help.
	v.cmd.Flags().SortFlags = false
	fs := v.cmd.PersistentFlags()
	fs.SortFlags = false

	fs.Int(flag.KeyLineLength,
		flag.DefaultLineLength,
		"the max length of msgid and msgstr lines")
	fs.Float64(flag.KeyWideCharMultiplier,
		flag.DefaultWideCharMultiplier,
		"width of a wide (CJK) character, e.g. 3 for CJK-heavy locales")
	fs.Bool(flag.KeySuppressMsgidRewrite,
		false,
		"keep msgid lines as they are, format msgstr only")
	fs.Bool(flag.KeySpacing,
		false,
		"insert spaces between CJK and Latin characters")
	for _, name := range []string{
		flag.KeyLineLength,
		flag.KeyWideCharMultiplier,
		flag.KeySuppressMsgidRewrite,
		flag.KeySpacing,
	} {
		_ = fs.SetAnnotation(name, groupAnnotationKey, []string{"Format options"})
	}

	fs.BoolP(flag.KeyCheck,
		"c",
		false,
		"check only, don't modify files")
	fs.String(flag.KeySince,
		"",
		"only format po files changed in the worktree since this revision")
	fs.IntP(flag.KeyJobs,
		"j",
		0,
		"number of files formatted at once (default: number of CPUs)")
	fs.String(flag.KeyColor,
		flag.ColorAuto,
		"colorize diffs: 'auto', 'always' or 'never'")
	for _, name := range []string{
		flag.KeyCheck,
		flag.KeySince,
		flag.KeyJobs,
		flag.KeyColor,
	} {
		_ = fs.SetAnnotation(name, groupAnnotationKey, []string{"Run options"})
	}

	fs.CountP(flag.KeyQuiet,
		"q",
		"quiet mode")
	fs.CountP(flag.KeyVerbose,
		"v",
		"verbose mode")
	fs.String(flag.KeyConfig,
		"",
		"load configuration from this file (overrides ~/.pofmt.yaml and repo pofmt.yaml)")
	for _, name := range []string{
		flag.KeyQuiet,
		flag.KeyVerbose,
		flag.KeyConfig,
	} {
		_ = fs.SetAnnotation(name, groupAnnotationKey, []string{"General options"})
	}

	fs.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	v.cmd.SetUsageTemplate(groupedUsageTemplate)

	return v.cmd
}

// Execute formats files, or only checks them with --check.
func (v rootCommand) Execute(cmd *cobra.Command, args []string) error {
	c := newFormatCommand(flag.Check())
	c.stdout = cmd.OutOrStdout()
	return c.Execute(args)
}

func (v *rootCommand) AddCommand(cmds ...*cobra.Command) {
	v.Command().AddCommand(cmds...)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() Response {
	var (
		resp Response
	)

	// Ensure all commands use SilenceErrors so main.go handles error output.
	setSilenceErrorsRecursive(rootCmd.Command())

	c, err := rootCmd.Command().ExecuteC()
	resp.Err = err
	resp.Cmd = c
	return resp
}

// bindEnv lets POFMT_* environment variables override config files, e.g.
// POFMT_LINE_LENGTH for --line-length.
func bindEnv() {
	viper.SetEnvPrefix("pofmt")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func init() {
	bindEnv()

	cobra.OnInitialize(rootCmd.initLog)
	cobra.OnInitialize(rootCmd.initRepository)
	cobra.OnInitialize(rootCmd.initConfig)
}

// setSilenceErrorsRecursive sets SilenceErrors on c and all its descendants.
func setSilenceErrorsRecursive(c *cobra.Command) {
	c.SilenceErrors = true
	for _, child := range c.Commands() {
		setSilenceErrorsRecursive(child)
	}
}
