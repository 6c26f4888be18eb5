package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/git-l10n/pofmt/cmd"
)

const (
	// Program is name for this project
	Program = "pofmt"
)

func main() {
	resp := cmd.Execute()

	if resp.Err != nil {
		// The report is already printed, only the exit status is left.
		if cmd.IsNotFormatted(resp.Err) {
			os.Exit(1)
		}
		errOut := resp.Cmd.ErrOrStderr()
		if resp.IsUserError() {
			if resp.Cmd.SilenceErrors {
				fmt.Fprintf(errOut, "ERROR: %s\n\n", resp.Err)
			}
			fmt.Fprint(errOut, resp.Cmd.UsageString())
		} else if resp.Cmd.SilenceErrors {
			fmt.Fprintf(errOut, "ERROR: %s\n", resp.Err)
			cmdPath := resp.Cmd.CommandPath()
			subCmdPath := strings.TrimPrefix(cmdPath, Program)
			fmt.Fprintf(errOut, "ERROR: fail to execute \"%s%s\"\n", Program, subCmdPath)
		}
		os.Exit(-1)
	}
}
