package list

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fvbommel/sortorder"
	"github.com/morikuni/aec"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
)

type listOptions struct {
	installed bool
}

func NewListCommand(kraitCli command.Cli) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list [OPTIONS]",
		Aliases: []string{"ls"},
		Short:   "List packages known to the manifest",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(kraitCli, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.installed, "installed", false, "Only show packages present in the local cache")

	return cmd
}

func runList(kraitCli command.Cli, opts listOptions) error {
	m, _, err := command.LoadManifest("")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(m.Packages))
	for name := range m.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(kraitCli.Out(), 0, 0, 3, ' ', 0)
	header := "NAME\tVERSIONS\tFILES"
	if kraitCli.Out().IsColorEnabled() {
		header = aec.Bold.Apply(header)
	}
	fmt.Fprintln(w, header)

	for _, name := range names {
		if opts.installed && !command.IsInstalled(name) {
			continue
		}
		versions := make([]string, 0, len(m.Packages[name]))
		files := 0
		for version, entries := range m.Packages[name] {
			versions = append(versions, version)
			for _, entry := range entries {
				files += len(entry.Contents)
			}
		}
		sort.Sort(sortorder.Natural(versions))
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, strings.Join(versions, ", "), files)
	}

	return w.Flush()
}
