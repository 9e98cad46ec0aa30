package main

import (
	"fmt"
	"os"

	"krait/cli"
	"krait/cli/command"
	"krait/cli/command/commands"
	"krait/cli/version"

	"github.com/spf13/cobra"
)

func main() {
	kraitCli, err := command.NewKraitCli()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := newKraitCommand(kraitCli)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(kraitCli.Err(), err)
		os.Exit(1)
	}
}

func newKraitCommand(kraitCli *command.KraitCli) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "krait [OPTIONS] COMMAND [ARG...]",
		Short:            "A manifest driven package repository tool",
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("krait: unknown command: krait %s\n\nRun 'krait --help' for more information on a command", args[0])
		},
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   false,
			HiddenDefaultCmd:    true,
			DisableDescriptions: true,
		},
	}

	opts, helpCmd := cli.SetupRootCommand(cmd)
	cmd.AddCommand(helpCmd)

	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		return kraitCli.Initialize(opts)
	}

	commands.AddCommands(cmd, kraitCli)

	return cmd
}
