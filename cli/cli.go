package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/DXist/const-env/cli/cmd"
	"github.com/DXist/const-env/pkg"
)

// CLI is the top-level command-line interface for constenv.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Rewrite cmd.Rewrite `cmd:"" default:"withargs" help:"Apply overrides and emit the rewritten manifest"`
	Check   cmd.Check   `cmd:""                    help:"Validate overrides without emitting output"`
	Keys    cmd.Keys    `cmd:""                    help:"List decorated declarations and their override keys"`
}

// Run executes the constenv CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Vars{
			"version": strings.TrimSpace(pkg.Version),
		}.CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration from all parsed flag values.
	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx)
}
