package command

import (
	"io"

	"krait/cli/debug"
	cliflags "krait/cli/flags"
	"krait/cli/streams"
	"krait/pkg/config"
	"krait/pkg/config/configfile"
	"krait/pkg/progress"

	"github.com/spf13/cobra"
)

// Streams is an interface which exposes the standard input and output streams
type Streams interface {
	In() *streams.In
	Out() *streams.Out
	Err() *streams.Out
}

// Cli represents the krait command line client.
type Cli interface {
	Streams
	SetIn(in *streams.In)
	ConfigFile() *configfile.ConfigFile
	Progress() *progress.Progress
	Apply(ops ...CLIOption) error
}

// KraitCli is an instance of the krait command line client.
// Instances of the client can be returned from NewKraitCli.
type KraitCli struct {
	in         *streams.In
	out        *streams.Out
	err        *streams.Out
	configFile *configfile.ConfigFile
	progress   *progress.Progress
}

// NewKraitCli returns a KraitCli instance with all operators applied on it.
// It applies by default the standard streams.
func NewKraitCli(ops ...CLIOption) (*KraitCli, error) {
	defaultOps := []CLIOption{
		WithStandardStreams(),
	}
	ops = append(defaultOps, ops...)

	cli := &KraitCli{}
	if err := cli.Apply(ops...); err != nil {
		return nil, err
	}
	return cli, nil
}

// Out returns the writer used for stdout
func (cli *KraitCli) Out() *streams.Out {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *KraitCli) Err() *streams.Out {
	return cli.err
}

// SetIn sets the reader used for stdin
func (cli *KraitCli) SetIn(in *streams.In) {
	cli.in = in
}

// In returns the reader used for stdin
func (cli *KraitCli) In() *streams.In {
	return cli.in
}

// ConfigFile returns the host configuration, loading it on first use.
func (cli *KraitCli) ConfigFile() *configfile.ConfigFile {
	if cli.configFile == nil {
		cli.configFile = config.LoadDefaultConfigFile()
	}
	return cli.configFile
}

// Progress returns the progress indicator for the CLI. It spins only
// when stderr is a terminal, in color only when the stream does color.
func (cli *KraitCli) Progress() *progress.Progress {
	if cli.progress == nil {
		cli.progress = &progress.Progress{
			ProgressIndicatorEnabled: cli.err.IsTerminal(),
			ProgressColorEnabled:     cli.err.IsColorEnabled(),
		}
	}
	return cli.progress
}

// ShowHelp shows the command help.
func ShowHelp(err io.Writer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SetOut(err)
		cmd.HelpFunc()(cmd, args)
		return nil
	}
}

// Apply all the operation on the cli
func (cli *KraitCli) Apply(ops ...CLIOption) error {
	for _, op := range ops {
		if err := op(cli); err != nil {
			return err
		}
	}
	return nil
}

// Initialize runs initialization that must happen after command line
// flags are parsed.
func (cli *KraitCli) Initialize(opts *cliflags.ClientOptions, ops ...CLIOption) error {
	for _, o := range ops {
		if err := o(cli); err != nil {
			return err
		}
	}
	cliflags.SetLogLevel(opts.LogLevel)

	if opts.ConfigDir != "" {
		config.SetDir(opts.ConfigDir)
	}

	if opts.Debug {
		debug.Enable()
	}

	return nil
}
