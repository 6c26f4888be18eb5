package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const groupAnnotationKey = "group"

// groupedUsageTemplate is the cobra usage template with flags printed by
// their "group" annotation.
const groupedUsageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{flagUsagesByGroup . | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// defaultFlagGroup holds flags without a "group" annotation.
const defaultFlagGroup = "Other options"

type flagGroup struct {
	name  string
	flags []*pflag.Flag
}

// groupFlags collects the visible local flags of cmd by their "group"
// annotation, groups in the order first seen. The --help and --version
// flags cobra adds join "General options".
func groupFlags(cmd *cobra.Command) []*flagGroup {
	var (
		groups []*flagGroup
		byName = make(map[string]*flagGroup)
	)

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := defaultFlagGroup
		if g := f.Annotations[groupAnnotationKey]; len(g) > 0 {
			name = g[0]
		} else if f.Name == "help" || f.Name == "version" {
			name = "General options"
		}
		group, ok := byName[name]
		if !ok {
			group = &flagGroup{name: name}
			byName[name] = group
			groups = append(groups, group)
		}
		group.flags = append(group.flags, f)
	})
	return groups
}

// flagUsagesByGroup formats local flags under a header per group. Without
// any annotated flag it is the plain pflag usage.
func flagUsagesByGroup(cmd *cobra.Command) string {
	if !cmd.HasAvailableLocalFlags() {
		return ""
	}
	groups := groupFlags(cmd)
	if len(groups) == 1 && groups[0].name == defaultFlagGroup {
		return cmd.LocalFlags().FlagUsages()
	}

	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", group.name)
		writeFlagUsages(&b, group.flags)
	}
	return b.String()
}

func writeFlagUsages(w io.Writer, flags []*pflag.Flag) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, f := range flags {
		fmt.Fprintf(tw, "  %s\t%s\n", flagSynopsis(f), flagDescription(f))
	}
	_ = tw.Flush()
}

// flagSynopsis returns e.g. "-j, --jobs int" or "    --line-length int".
// Flags with an implicit value, such as bool and count flags, show no type.
func flagSynopsis(f *pflag.Flag) string {
	synopsis := "    --" + f.Name
	if f.Shorthand != "" && f.ShorthandDeprecated == "" {
		synopsis = "-" + f.Shorthand + ", --" + f.Name
	}
	if varname, _ := pflag.UnquoteUsage(f); varname != "" && f.NoOptDefVal == "" {
		synopsis += " " + varname
	}
	return synopsis
}

func flagDescription(f *pflag.Flag) string {
	_, usage := pflag.UnquoteUsage(f)
	switch f.DefValue {
	case "", "0", "false":
	default:
		if f.Value.Type() == "string" {
			usage += fmt.Sprintf(" (default %q)", f.DefValue)
		} else {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
	}
	return usage
}

func init() {
	cobra.AddTemplateFunc("flagUsagesByGroup", flagUsagesByGroup)
}
