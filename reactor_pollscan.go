//go:build unix

package lthreads

import "github.com/hbreactor/lthreads/internal"

// PollScanReactor is a portable, no-kernel-registration Reactor
// backend: interest lives in a plain map and the dense array unix.Poll
// needs is only recompiled when it's stale, so a burst of
// Monitor/RemoveSocket calls between two Work calls costs exactly one
// rebuild.
type PollScanReactor struct {
	*Reactor

	poll    *internal.PollSet
	reports []internal.Report
}

func NewPollScanReactor(arena *Arena) *PollScanReactor {
	pr := &PollScanReactor{poll: internal.NewPollSet()}
	pr.Reactor = NewReactor(arena, pr)
	return pr
}

func (pr *PollScanReactor) OnSocketOps(fd int, op SocketOp) error {
	switch op {
	case OpAdded:
		return pr.poll.Add(fd)
	case OpRemoved:
		return pr.poll.Remove(fd)
	}
	return nil
}

func (pr *PollScanReactor) Work(timeoutMs int) (int, error) {
	var err error
	pr.reports, err = pr.poll.Wait(timeoutMs, pr.reports[:0])
	if err != nil {
		return 0, err
	}
	for _, rep := range pr.reports {
		pr.notifyEvent(rep.Fd, fromInternalKind(rep.Kind))
	}
	return len(pr.reports), nil
}

// Rebuilds returns how many times the backend has recompiled its dense
// poll array from the interest map, for tests asserting the delayed
// rebuild property.
func (pr *PollScanReactor) Rebuilds() int { return pr.poll.Rebuilds() }
