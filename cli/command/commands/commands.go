package commands

import (
	"krait/cli/command"
	"krait/cli/command/clean"
	"krait/cli/command/generate"
	"krait/cli/command/install"
	"krait/cli/command/list"
	"krait/cli/command/search"
	"krait/cli/command/setup"
	"krait/cli/command/uninstall"

	"github.com/spf13/cobra"
)

func AddCommands(cmd *cobra.Command, kraitCli command.Cli) {
	cmd.AddCommand(
		generate.NewGenerateCommand(kraitCli),
		install.NewInstallCommand(kraitCli),
		uninstall.NewUninstallCommand(kraitCli),
		search.NewSearchCommand(kraitCli),
		list.NewListCommand(kraitCli),
		clean.NewCleanCommand(kraitCli),
		setup.NewSetupCommand(kraitCli),
	)
}
