// Package diag holds a profiling collaborator that lives outside the
// reactor core: an always-on sampling profile capture hook built on
// fgprof, which captures both on-CPU and off-CPU (blocked-on-channel)
// time. The off-CPU half matters here since a coroutine spends most of
// its life parked in Wait's channel receive.
package diag

import (
	"io"

	"github.com/felixge/fgprof"
)

// Profile is a running fgprof capture. Start it before driving a
// Reactor's Work loop and call Stop when done to flush the profile.
type Profile struct {
	stop func() error
}

// StartProfile begins sampling and writes the collapsed-stack profile
// to w once Stop is called.
func StartProfile(w io.Writer) *Profile {
	stop := fgprof.Start(w, fgprof.FormatFolded)
	return &Profile{stop: stop}
}

// Stop ends sampling and flushes the profile to the writer given to
// StartProfile.
func (p *Profile) Stop() error {
	return p.stop()
}
