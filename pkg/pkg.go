//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the module embedded at build time.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across
	// the project, appearing in help text and log output.
	Name = "constenv"
	// Description is a short, human-readable summary of the project
	// used in help output.
	Description = "Build-time constant override tool"
)
