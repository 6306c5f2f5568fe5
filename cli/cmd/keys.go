package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/sahilm/fuzzy"

	"github.com/DXist/const-env/decl"
	"github.com/DXist/const-env/rewrite"
)

// Keys lists every decorated declaration with its resolved override
// key and literal kind.
type Keys struct {
	Source []string `arg:"" help:"Manifest file(s) or '-' for stdin" optional:""`
	Filter string   `       help:"Fuzzy-filter by override key" short:"f"`
}

// Run executes the keys command.
func (k *Keys) Run(_ context.Context) error {
	var infos []rewrite.KeyInfo

	for _, src := range sourcesOrStdin(k.Source) {
		text, err := readSource(src)
		if err != nil {
			return err
		}

		m, err := decl.Parse(text)
		if err != nil {
			return decl.WrapError(err).With(slog.String("source", src))
		}

		found, err := rewrite.ManifestKeys(m)
		if err != nil {
			return decl.WrapError(err).With(slog.String("source", src))
		}

		infos = append(infos, found...)
	}

	if k.Filter != "" {
		keys := make([]string, len(infos))
		for i, info := range infos {
			keys[i] = info.Key
		}

		matched := make([]rewrite.KeyInfo, 0, len(infos))
		for _, m := range fuzzy.Find(k.Filter, keys) {
			matched = append(matched, infos[m.Index])
		}

		infos = matched
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for _, info := range infos {
		key := info.Key
		if !info.Explicit {
			key += " (default)"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\tline %d\n",
			info.Name, key, info.Kind, info.Line)
	}

	return w.Flush()
}
