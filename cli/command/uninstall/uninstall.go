package uninstall

import (
	"os"
	"path/filepath"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
	"krait/pkg/config"
)

func NewUninstallCommand(kraitCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall PACKAGE[@VERSION] [PACKAGE[@VERSION]...]",
		Short: "Remove installed packages from the local cache",
		Args:  cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(kraitCli, args)
		},
	}
	return cmd
}

func runUninstall(kraitCli command.Cli, args []string) error {
	for _, arg := range args {
		name, version := command.ParseRef(arg)

		target := filepath.Join(config.CacheDir(), name)
		if version != "" {
			target = filepath.Join(target, version)
		}

		if _, err := os.Stat(target); os.IsNotExist(err) {
			return errors.Errorf("%s is not installed", arg)
		}

		if err := os.RemoveAll(target); err != nil {
			return errors.Wrapf(err, "failed to uninstall %s", arg)
		}

		// Removing the last version leaves an empty package directory
		// behind, drop it too.
		if version != "" {
			_ = removeIfEmpty(filepath.Join(config.CacheDir(), name))
		}

		kraitCli.Out().With(aec.GreenF).Printf("Uninstalled %s\n", arg)
	}
	return nil
}

func removeIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return os.Remove(dir)
	}
	return nil
}
