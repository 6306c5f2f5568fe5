// Package profile exposes optional runtime profiling for the CLI.
// It is a no-op unless the binary is built with the pprof build tag,
// which links github.com/pkg/profile and net/http/pprof.
package profile

// Tag is the build tag that enables profiling support.
const Tag = "pprof"

// noop satisfies the profiler Stop contract when profiling is
// unavailable or misconfigured.
type noop struct{}

func (noop) Stop() {}
