package build

import (
	"fmt"
	"runtime"
	"strings"
)

// Target is a build output kind.
type Target string

const (
	// Native is an executable for the host OS and architecture.
	Native Target = "native"
	// Web is a js/wasm module plus loader and page for the browser.
	Web Target = "web"
)

// AllTargets lists every target in build order.
var AllTargets = []Target{Native, Web}

// ParseTargets maps command-line names to targets. "all" expands to every
// target; duplicates are dropped.
func ParseTargets(names ...string) ([]Target, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no build target given (valid: native, web, all)")
	}
	seen := make(map[Target]bool)
	var out []Target
	add := func(t Target) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "native":
			add(Native)
		case "web", "wasm":
			add(Web)
		case "all":
			for _, t := range AllTargets {
				add(t)
			}
		default:
			return nil, fmt.Errorf("unknown build target %q (valid: native, web, all)", n)
		}
	}
	return out, nil
}

// nativeBinaryName is the executable name for the host.
func nativeBinaryName(goos string) string {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" {
		return "life.exe"
	}
	return "life"
}
