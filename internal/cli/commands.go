package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/wdremote/internal/remote"
)

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [filter]",
		Short: "List the built-in commands",
		Long: `List the built-in command names with their HTTP method and URL template.
An optional filter keeps names containing it, case-insensitively.

Example:
  wdctl commands
  wdctl commands cookie`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommands,
	}
}

func runCommands(cmd *cobra.Command, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	registry := remote.NewRegistry()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tURL")
	for _, name := range registry.Names() {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		entry, err := registry.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Name, entry.Method, entry.URLTemplate)
	}
	return tw.Flush()
}
