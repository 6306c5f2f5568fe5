package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/DXist/const-env/decl"
	"github.com/DXist/const-env/log"
	"github.com/DXist/const-env/rewrite"
)

// Rewrite applies overrides to manifest files and emits the rewritten
// source.
type Rewrite struct {
	Source    []string `arg:"" help:"Manifest file(s) or '-' for stdin" optional:""`
	Overrides string   `       help:"YAML file of override values (default: process environment)" placeholder:"FILE"`
	Output    string   `       help:"Output file, '-' for stdout"                                                    default:"-" short:"o"`
	InPlace   bool     `       help:"Rewrite source files in place"                                                              short:"i"`
}

// Run executes the rewrite command. Rewritten output is buffered and
// written only after every source processed cleanly, so a failed run
// never truncates an existing output file.
func (r *Rewrite) Run(ctx context.Context) error {
	p, err := provider(r.Overrides)
	if err != nil {
		return err
	}

	var buf strings.Builder

	for _, src := range sourcesOrStdin(r.Source) {
		text, err := readSource(src)
		if err != nil {
			return err
		}

		result, changes, err := rewrite.File(
			ctx, text, p,
			rewrite.WithLogger(log.Default()),
		)
		if err != nil {
			return decl.WrapError(err).With(slog.String("source", src))
		}

		log.InfoContext(ctx, "manifest processed",
			slog.String("source", src),
			slog.Int("overrides", len(changes)),
		)

		if !r.InPlace {
			buf.WriteString(result)

			continue
		}

		if src == stdinSource {
			return decl.NewError("cannot rewrite stdin in place")
		}

		if err := writeBack(src, result); err != nil {
			return err
		}
	}

	if r.InPlace {
		return nil
	}

	return writeOutput(r.Output, buf.String())
}

// writeOutput writes content to path, or to stdout for "-".
func writeOutput(path, content string) error {
	if path == stdoutSink {
		_, err := io.WriteString(os.Stdout, content)

		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(f, content); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// writeBack replaces the contents of path, preserving its file mode.
func writeBack(path, content string) error {
	mode := os.FileMode(0o644)

	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return os.WriteFile(path, []byte(content), mode)
}
