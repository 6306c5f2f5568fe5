package cmd

import (
	"io"
	"os"

	"github.com/DXist/const-env/env"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdoutSink is the special output indicator for writing to stdout.
const stdoutSink = "-"

// readSource returns the contents of path, reading stdin for "-".
func readSource(path string) (string, error) {
	if path == stdinSource {
		b, err := io.ReadAll(os.Stdin)

		return string(b), err
	}

	b, err := os.ReadFile(path)

	return string(b), err
}

// provider selects the override source: a pinned YAML override set
// when path is non-empty, the live process environment otherwise.
func provider(path string) (env.Provider, error) {
	if path == "" {
		return env.OS{}, nil
	}

	return env.LoadFile(path)
}

// sourcesOrStdin substitutes stdin when no sources were given.
func sourcesOrStdin(sources []string) []string {
	if len(sources) == 0 {
		return []string{stdinSource}
	}

	return sources
}
