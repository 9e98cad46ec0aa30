package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
	"krait/pkg/config"
	"krait/pkg/fetch"
)

type installOptions struct {
	packages []string
	force    bool
}

func NewInstallCommand(kraitCli command.Cli) *cobra.Command {
	var opts installOptions

	cmd := &cobra.Command{
		Use:   "install PACKAGE[@VERSION] [PACKAGE[@VERSION]...]",
		Short: "Download packages from the manifest into the local cache",
		Args:  cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.packages = args
			return runInstall(cmd, kraitCli, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Reinstall even when the package is already cached")

	return cmd
}

func runInstall(cmd *cobra.Command, kraitCli command.Cli, opts installOptions) error {
	m, _, err := command.LoadManifest("")
	if err != nil {
		return err
	}

	client := fetch.NewClient()

	for _, arg := range opts.packages {
		name, version := command.ParseRef(arg)
		version, err = command.ResolveVersion(m, name, version)
		if err != nil {
			return err
		}

		entries := m.Entries(name, version)
		destDir := filepath.Join(config.CacheDir(), name, version)

		if !opts.force {
			if _, err := os.Stat(destDir); err == nil {
				kraitCli.Out().With(aec.YellowF).Printf("%s@%s is already installed, use --force to reinstall\n", name, version)
				continue
			}
		}

		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return err
		}

		err = kraitCli.Progress().RunWithProgress(fmt.Sprintf("Installing %s@%s", name, version), func() error {
			for _, entry := range entries {
				for _, file := range entry.Contents {
					if file.URL == "" {
						return errors.Errorf("%s@%s: no fetch URL for %s", name, version, file.Path)
					}
					if err := client.Content(cmd.Context(), file, destDir); err != nil {
						return errors.Wrapf(err, "failed to install %s@%s", name, version)
					}
				}
			}
			return nil
		}, kraitCli.Err())
		if err != nil {
			return err
		}

		kraitCli.Out().With(aec.GreenF).Printf("Installed %s@%s\n", name, version)
	}

	return nil
}
