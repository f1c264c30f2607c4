//go:build darwin || netbsd || freebsd || openbsd || dragonfly

package lthreads

import "github.com/hbreactor/lthreads/internal"

// KqueueReactor is a Reactor whose readiness is sourced from BSD/Darwin
// kqueue, this platform family's kernel-registered backend.
type KqueueReactor struct {
	*Reactor

	kqueue  *internal.Kqueue
	reports []internal.Report
}

func NewKqueueReactor(arena *Arena, opts ...Option) (*KqueueReactor, error) {
	cfg := newBackendConfig(opts)
	kq, err := internal.NewKqueue(cfg.maxEvents)
	if err != nil {
		return nil, err
	}
	kr := &KqueueReactor{kqueue: kq}
	kr.Reactor = NewReactor(arena, kr)
	return kr, nil
}

func (kr *KqueueReactor) OnSocketOps(fd int, op SocketOp) error {
	switch op {
	case OpAdded:
		return kr.kqueue.Add(fd)
	case OpRemoved:
		return kr.kqueue.Remove(fd)
	}
	return nil
}

func (kr *KqueueReactor) Work(timeoutMs int) (int, error) {
	var err error
	kr.reports, err = kr.kqueue.Wait(timeoutMs, kr.reports[:0])
	if err != nil {
		return 0, err
	}
	for _, rep := range kr.reports {
		kr.notifyEvent(rep.Fd, fromInternalKind(rep.Kind))
	}
	return len(kr.reports), nil
}

func (kr *KqueueReactor) Close() error {
	return kr.kqueue.Close()
}
