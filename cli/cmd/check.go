package cmd

import (
	"context"
	"log/slog"

	"github.com/DXist/const-env/decl"
	"github.com/DXist/const-env/log"
	"github.com/DXist/const-env/rewrite"
)

// Check validates that every decorated declaration parses, that every
// override key resolves, and that every present override value parses
// as the declared literal kind. No output is emitted; a failure aborts
// with a nonzero exit.
type Check struct {
	Source    []string `arg:"" help:"Manifest file(s) or '-' for stdin" optional:""`
	Overrides string   `       help:"YAML file of override values (default: process environment)" placeholder:"FILE"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	p, err := provider(c.Overrides)
	if err != nil {
		return err
	}

	for _, src := range sourcesOrStdin(c.Source) {
		text, err := readSource(src)
		if err != nil {
			return err
		}

		_, changes, err := rewrite.File(
			ctx, text, p,
			rewrite.WithLogger(log.Default()),
		)
		if err != nil {
			return decl.WrapError(err).With(slog.String("source", src))
		}

		log.InfoContext(ctx, "check passed",
			slog.String("source", src),
			slog.Int("overrides", len(changes)),
		)
	}

	return nil
}
