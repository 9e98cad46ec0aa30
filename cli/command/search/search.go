package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
)

func NewSearchCommand(kraitCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search the manifest for packages by name",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(kraitCli, args[0])
		},
	}
	return cmd
}

func runSearch(kraitCli command.Cli, term string) error {
	m, _, err := command.LoadManifest("")
	if err != nil {
		return err
	}

	var names []string
	for name := range m.Packages {
		if strings.Contains(strings.ToLower(name), strings.ToLower(term)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Fprintf(kraitCli.Out(), "no packages matching %q\n", term)
		return nil
	}

	for _, name := range names {
		versions := make([]string, 0, len(m.Packages[name]))
		for version := range m.Packages[name] {
			versions = append(versions, version)
		}
		sort.Sort(sortorder.Natural(versions))

		for _, version := range versions {
			fmt.Fprintf(kraitCli.Out(), "%s@%s\n", name, version)
			for _, entry := range m.Packages[name][version] {
				for _, file := range entry.Contents {
					fmt.Fprintf(kraitCli.Out(), "  %s  %s\n", file.Digest, file.Path)
				}
			}
		}
	}
	return nil
}
