//go:build lthreads_debug

package lthreads

import "fmt"

// assertf panics with a formatted message when cond is false. It only
// exists in builds tagged lthreads_debug; release builds compile it out
// entirely via debug_off.go. Invariants it guards are enforced by
// debug-mode assertions only; release-mode behavior on violation is
// unspecified.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// DebugEnabled reports whether this build was compiled with the
// lthreads_debug tag, so an embedder can decide whether to enable
// extra diagnostics (e.g. a diag.Profile capture) that only pay for
// themselves alongside assertion checking.
const DebugEnabled = true
