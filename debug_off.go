//go:build !lthreads_debug

package lthreads

func assertf(cond bool, format string, args ...interface{}) {}

// DebugEnabled reports whether this build was compiled with the
// lthreads_debug tag, so an embedder can decide whether to enable
// extra diagnostics (e.g. a diag.Profile capture) that only pay for
// themselves alongside assertion checking.
const DebugEnabled = false
