// Package prof wires runtime profiling into the CLI via github.com/pkg/profile.
package prof

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
	"clock":     profile.ClockProfile,
}

// Modes returns the accepted --profile values, sorted.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

// Stopper ends a profiling session and flushes the profile to disk.
type Stopper interface{ Stop() }

type ignore struct{}

func (ignore) Stop() {}

// Start begins profiling in mode ("" or "off" disables it). Profiles go to
// dir, or a temp directory when dir is empty. The returned Stopper must be
// called before the process exits.
func Start(mode, dir string, quiet bool) (Stopper, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || mode == "off" {
		return ignore{}, nil
	}
	fn, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (expected one of: %s)", mode, strings.Join(Modes(), ", "))
	}
	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	if quiet {
		opts = append(opts, profile.Quiet)
	}
	return profile.Start(opts...), nil
}
