//go:build linux

package lthreads

import "github.com/hbreactor/lthreads/internal"

// EpollReactor is a Reactor whose readiness is sourced from Linux's
// epoll: every Monitor/RemoveSocket transition is mirrored into the
// kernel's interest list immediately, so Work only has to ask the
// kernel which of the already-registered descriptors are ready.
type EpollReactor struct {
	*Reactor

	epoll   *internal.Epoll
	reports []internal.Report
}

// NewEpollReactor constructs a Reactor backed by epoll.
func NewEpollReactor(arena *Arena, opts ...Option) (*EpollReactor, error) {
	cfg := newBackendConfig(opts)
	epoll, err := internal.NewEpoll(cfg.maxEvents)
	if err != nil {
		return nil, err
	}
	er := &EpollReactor{epoll: epoll}
	er.Reactor = NewReactor(arena, er)
	return er, nil
}

// OnSocketOps mirrors a subscription-count transition into epoll's
// kernel-side interest list.
func (er *EpollReactor) OnSocketOps(fd int, op SocketOp) error {
	switch op {
	case OpAdded:
		return er.epoll.Add(fd)
	case OpRemoved:
		return er.epoll.Remove(fd)
	}
	return nil
}

// Work blocks up to timeoutMs milliseconds (negative blocks
// indefinitely) waiting for readiness, then dispatches every observed
// event through the embedded Reactor. It returns the number of events
// dispatched.
func (er *EpollReactor) Work(timeoutMs int) (int, error) {
	var err error
	er.reports, err = er.epoll.Wait(timeoutMs, er.reports[:0])
	if err != nil {
		return 0, err
	}
	for _, rep := range er.reports {
		er.notifyEvent(rep.Fd, fromInternalKind(rep.Kind))
	}
	return len(er.reports), nil
}

// Close releases the underlying epoll descriptor.
func (er *EpollReactor) Close() error {
	return er.epoll.Close()
}
