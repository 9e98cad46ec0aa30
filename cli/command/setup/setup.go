package setup

import (
	"fmt"
	"os"
	"runtime"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
	"krait/pkg/config"
)

const defaultRepo = "github.com/m1ten/krait-pkgs"

type setupOptions struct {
	repo          string
	assumeDefault bool
}

func NewSetupCommand(kraitCli command.Cli) *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup [OPTIONS]",
		Short: "Create the krait directories and configuration file",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, kraitCli, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.repo, "repo", "", "Package repository to configure (default: "+defaultRepo+")")
	flags.BoolVarP(&opts.assumeDefault, "yes", "y", false, "Accept defaults without prompting")

	return cmd
}

func runSetup(cmd *cobra.Command, kraitCli command.Cli, opts setupOptions) error {
	if runtime.GOOS != "windows" && os.Geteuid() == 0 {
		return errors.New("refusing to run setup as root, run it as a regular user")
	}

	for _, dir := range []string{config.Dir(), config.BinDir(), config.CacheDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create krait directories")
		}
	}

	repo := opts.repo
	if repo == "" {
		repo = defaultRepo
		if !opts.assumeDefault && kraitCli.In().IsTerminal() {
			answer, err := command.PromptForInput(cmd.Context(), kraitCli.In(), kraitCli.Out(),
				fmt.Sprintf("Package repository [%s]: ", defaultRepo))
			if err != nil {
				return err
			}
			if answer != "" {
				repo = answer
			}
		}
	}

	cfg := kraitCli.ConfigFile()
	cfg.Repo = repo
	if err := cfg.Save(); err != nil {
		return errors.Wrap(err, "failed to write configuration file")
	}

	kraitCli.Out().With(aec.GreenF).Printf("krait is set up in %s\n", config.Dir())
	return nil
}
