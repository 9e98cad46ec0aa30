package clean

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
	"krait/pkg/config"
)

type cleanOptions struct {
	force bool
}

func NewCleanCommand(kraitCli command.Cli) *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:   "clean [OPTIONS]",
		Short: "Remove all cached package downloads",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, kraitCli, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Do not prompt for confirmation")

	return cmd
}

func runClean(cmd *cobra.Command, kraitCli command.Cli, opts cleanOptions) error {
	cacheDir := config.CacheDir()

	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		fmt.Fprintln(kraitCli.Out(), "cache is already empty")
		return nil
	}

	if !opts.force {
		ok, err := command.PromptForConfirmation(cmd.Context(), kraitCli.In(), kraitCli.Out(),
			fmt.Sprintf("This will remove everything under %s.", cacheDir))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(kraitCli.Out(), "clean aborted")
			return nil
		}
	}

	if err := os.RemoveAll(cacheDir); err != nil {
		return errors.Wrap(err, "failed to clean cache")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}

	fmt.Fprintln(kraitCli.Out(), "cache cleaned")
	return nil
}
