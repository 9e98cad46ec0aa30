package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"krait/cli"
	"krait/cli/command"
	"krait/pkg/manifest"
	"krait/pkg/manifest/luacodec"
)

type generateOptions struct {
	repoRoot string
	output   string
	dryRun   bool
}

func NewGenerateCommand(kraitCli command.Cli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [OPTIONS]",
		Short: "Scan a package repository and write its manifest",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(kraitCli, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.repoRoot, "repo", "r", "", "Repository checkout to scan (default: current directory)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the manifest to this path instead of the repository root")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the manifest instead of writing it")

	return cmd
}

func runGenerate(kraitCli command.Cli, opts generateOptions) error {
	root := opts.repoRoot
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	target := opts.output
	if target == "" {
		target = filepath.Join(root, manifest.FileName)
	}

	codec := luacodec.New()

	// An existing manifest seeds the run so entries from other branches
	// or hand-kept fields survive regeneration.
	seed, err := manifest.Load(target, codec)
	if err != nil {
		return errors.Wrapf(err, "existing manifest at %s is not loadable", target)
	}
	if seed == nil {
		seed = manifest.New()
	}

	m, stats, err := manifest.Generate(root, seed)
	if err != nil {
		return err
	}

	if opts.dryRun {
		text, err := codec.Serialize(m)
		if err != nil {
			return err
		}
		_, err = kraitCli.Out().Write([]byte(text))
		return err
	}

	if err := manifest.Save(target, m, codec); err != nil {
		return err
	}

	fmt.Fprintf(kraitCli.Out(), "wrote %s: %d packages, %d files (%s hashed)\n",
		target, stats.Packages, stats.Files, units.HumanSize(float64(stats.HashedBytes)))
	return nil
}
