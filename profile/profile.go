//go:build pprof

package profile

import (
	"maps"
	"slices"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// mode maps CLI mode names to pkg/profile selectors.
//
//nolint:gochecknoglobals
var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the sorted list of supported profiling modes.
func Modes() []string {
	return slices.Sorted(maps.Keys(mode))
}

// Start begins profiling in the named mode, writing output under dir.
// Unrecognized modes return a no-op profiler.
func Start(name, dir string) interface{ Stop() } {
	fn, ok := mode[name]
	if !ok {
		return noop{}
	}

	return profile.Start(fn, profile.ProfilePath(dir), profile.Quiet)
}
