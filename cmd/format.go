package cmd

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/git-l10n/pofmt/flag"
	"github.com/git-l10n/pofmt/util"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

// formatCommand formats or checks the selected po files. It is run by the
// root command and by "check".
type formatCommand struct {
	O struct {
		Check  bool
		Since  string
		Jobs   int
		Color  string
		Format util.FormatOptions
	}
	stdout io.Writer
}

func newFormatCommand(check bool) *formatCommand {
	v := &formatCommand{}
	v.O.Check = check
	v.O.Since = flag.Since()
	v.O.Jobs = flag.Jobs()
	v.O.Color = flag.Color()
	v.O.Format = util.FormatOptions{
		LineLength:               flag.LineLength(),
		WideCharMultiplier:       flag.WideCharMultiplier(),
		LocaleWideCharMultiplier: flag.LocaleWideCharMultiplier(),
		SuppressMsgidRewrite:     flag.SuppressMsgidRewrite(),
		Spacer:                   util.NewSpacer(flag.Spacing()),
	}
	return v
}

func (v formatCommand) output() io.Writer {
	if v.stdout != nil {
		return v.stdout
	}
	return os.Stdout
}

func (v formatCommand) Execute(args []string) error {
	if v.O.Format.LineLength < 3 {
		return NewErrorWithUsageF("--line-length must be at least 3, got %d",
			v.O.Format.LineLength)
	}
	if v.O.Format.WideCharMultiplier <= 0 {
		return NewErrorWithUsageF("--wide-char-multiplier must be positive, got %v",
			v.O.Format.WideCharMultiplier)
	}
	if v.O.Jobs < 0 {
		return NewErrorWithUsageF("--jobs must not be negative, got %d", v.O.Jobs)
	}
	if err := setColorMode(v.O.Color); err != nil {
		return err
	}

	files, err := v.selectFiles(args)
	if err != nil {
		return err
	}
	log.Debugf("formatting %d file(s), check mode: %v", len(files), v.O.Check)

	results := util.FormatFiles(context.Background(), files, util.BatchOptions{
		Format: v.O.Format,
		Check:  v.O.Check,
		Jobs:   v.O.Jobs,
	})
	summary := util.ReportResults(v.output(), results, util.DefaultSymbols())
	if !summary.OK() {
		return errNotFormatted
	}
	return nil
}

func (v formatCommand) selectFiles(args []string) ([]string, error) {
	if v.O.Since != "" {
		if len(args) > 0 {
			return nil, NewErrorWithUsage("--since cannot be used together with paths")
		}
		files, err := util.GetChangedPoFiles(v.O.Since)
		if err != nil {
			return nil, NewStandardErrorF("%v", err)
		}
		return files, nil
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := util.ResolvePoFiles(args)
	if err != nil {
		return nil, NewStandardErrorF("%v", err)
	}
	return files, nil
}

// setColorMode turns colored diffs on or off. In auto mode colors are used
// only when stdout is a terminal and NO_COLOR is not set.
func setColorMode(mode string) error {
	switch mode {
	case flag.ColorAlways:
		color.NoColor = false
	case flag.ColorNever:
		color.NoColor = true
	case flag.ColorAuto, "":
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("NO_COLOR") != "" ||
			!(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	default:
		return NewErrorWithUsageF("bad --color mode %q, must be one of auto, always or never", mode)
	}
	return nil
}
