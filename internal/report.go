package internal

// Kind classifies a single readiness report a backend produces,
// independent of which OS primitive produced it. It mirrors
// lthreads.EventKind's Read/Error/Hangup cases; internal cannot import
// the root package (which imports internal for its backends), so the
// mapping back to lthreads.EventKind happens in the root package's
// backend wrapper files.
type Kind uint8

const (
	Read Kind = iota
	Error
	Hangup
)

// Report is a single readiness observation from one backend Wait call.
type Report struct {
	Fd   int
	Kind Kind
}
