package env

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// Load builds a Fixed provider from a YAML document mapping keys to
// values:
//
//	LIMIT: "99"
//	SERVER_NAME: staging
//
// Scalar values of any YAML type are stored in their string form; the
// literal-kind validation happens later, at rewrite time.
func Load(r io.Reader) (*Fixed, error) {
	vars := map[string]any{}

	err := yaml.NewDecoder(r).Decode(&vars)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	b := NewBuilder()
	for key, val := range vars {
		b.Set(key, fmt.Sprintf("%v", val))
	}

	return b.Build(), nil
}

// LoadFile builds a Fixed provider from a YAML file. See Load.
func LoadFile(path string) (*Fixed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
