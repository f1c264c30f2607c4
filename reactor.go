package lthreads

import (
	"errors"

	"github.com/eapache/queue"
)

var (
	// ErrInvalidFd is returned by Monitor for a negative descriptor.
	ErrInvalidFd = errors.New("lthreads: descriptor must be non-negative")
	// ErrNilCoroutine is returned by Monitor for a nil coroutine.
	ErrNilCoroutine = errors.New("lthreads: coroutine must not be nil")
)

// SocketOp identifies the transition a descriptor made in the
// subscription sets, delivered to a backend's OnSocketOps hook.
type SocketOp uint8

const (
	OpNA SocketOp = iota
	// OpAdded fires when a descriptor gains its first subscriber.
	OpAdded
	// OpRemoved fires when a descriptor loses its last subscriber.
	OpRemoved
)

func (op SocketOp) String() string {
	switch op {
	case OpAdded:
		return "Added"
	case OpRemoved:
		return "Removed"
	default:
		return "NA"
	}
}

// SocketOpsHandler is implemented by readiness backends (§4.4, §4.5).
// Reactor calls OnSocketOps whenever a descriptor transitions between
// zero and at least one subscriber; it never calls it for any other
// reason.
type SocketOpsHandler interface {
	OnSocketOps(fd int, op SocketOp) error
}

// Reactor is the subscription-and-dispatch core of the event loop. It
// owns the dual ordered subscription sets and dispatches readiness
// events to subscribed coroutines; it knows nothing about how
// readiness is actually obtained from the OS -- that is the backend's
// job, wired in at construction as a SocketOpsHandler and driven by
// calling notifyEvent whenever the backend observes a ready descriptor.
//
// Backends are composed with a *Reactor (see reactor_epoll.go,
// reactor_kqueue.go, reactor_pollscan.go) rather than inheriting from
// it, since Go has no protected/virtual split to hang a base class off.
type Reactor struct {
	arena *Arena

	bySocket    *subscriptionSet
	byCoroutine *subscriptionSet

	backend SocketOpsHandler

	// completing is the side buffer notifyEvent uses to defer removal
	// of coroutines that report completion until after the current
	// descriptor's dispatch finishes, so iteration never mutates the
	// slice it is walking.
	completing *queue.Queue

	// stacks holds one arena Block per coroutine currently subscribed
	// to this reactor, sized to that coroutine's StackSize. It is the
	// arena's only caller: a coroutine's block is drawn on its first
	// Monitor call and returned once it has no subscriptions left in
	// byCoroutine, whether that happens via RemoveThread or via
	// RemoveSocket removing its last remaining descriptor.
	stacks map[*Coroutine]*Block
}

// NewReactor constructs a Reactor over arena, delivering socket
// add/remove notifications to backend.
func NewReactor(arena *Arena, backend SocketOpsHandler) *Reactor {
	return &Reactor{
		arena:       arena,
		bySocket:    newSubscriptionSet(bySocketLess),
		byCoroutine: newSubscriptionSet(byCoroutineLess),
		backend:     backend,
		completing:  queue.New(),
		stacks:      make(map[*Coroutine]*Block),
	}
}

// Arena returns the arena this reactor was constructed with.
func (r *Reactor) Arena() *Arena { return r.arena }

// Active reports whether at least one subscription exists. Embedders
// drive Work in a loop while Active is true.
func (r *Reactor) Active() bool { return r.bySocket.size() > 0 }

// Monitor subscribes co to events on fd. Re-monitoring an identical
// (fd, co) pair is a no-op. The backend's OnSocketOps(fd, OpAdded) hook
// fires exactly when fd gains its first subscriber.
func (r *Reactor) Monitor(fd int, co *Coroutine) error {
	if fd < 0 {
		return ErrInvalidFd
	}
	if co == nil {
		return ErrNilCoroutine
	}

	if _, tracked := r.stacks[co]; !tracked {
		block, err := r.arena.Allocate(co.StackSize())
		if err != nil {
			return err
		}
		r.stacks[co] = block
	}

	lo, hi := r.bySocket.fdRange(fd)
	isFirstSubscriber := hi == lo

	sub := subscription{fd: fd, co: co}

	if isFirstSubscriber {
		if err := r.backend.OnSocketOps(fd, OpAdded); err != nil {
			return err
		}
	}

	insertedSocket := r.bySocket.insert(sub)
	insertedCoroutine := r.byCoroutine.insert(sub)
	assertf(insertedSocket == insertedCoroutine, "lthreads: dual-set insert diverged")

	return nil
}

// RemoveSocket erases every subscription for fd and calls
// OnSocketOps(fd, OpRemoved) once, however many subscribers fd had. If
// fd had no subscriptions, it is a no-op and the hook does not fire.
func (r *Reactor) RemoveSocket(fd int) error {
	lo, hi := r.bySocket.fdRange(fd)
	removed := r.bySocket.eraseRange(lo, hi)
	for _, sub := range removed {
		r.byCoroutine.erase(sub)
		r.releaseStackIfIdle(sub.co)
	}
	if len(removed) == 0 {
		return nil
	}
	return r.backend.OnSocketOps(fd, OpRemoved)
}

// RemoveThread erases every subscription belonging to co. For each
// descriptor that loses its last subscriber as a result,
// OnSocketOps(fd, OpRemoved) fires exactly once.
func (r *Reactor) RemoveThread(co *Coroutine) error {
	lo, hi := r.byCoroutine.coroutineRange(co)
	removed := r.byCoroutine.eraseRange(lo, hi)

	var emptied []int
	for _, sub := range removed {
		r.bySocket.erase(sub)
		flo, fhi := r.bySocket.fdRange(sub.fd)
		if flo == fhi {
			emptied = append(emptied, sub.fd)
		}
	}

	for _, fd := range emptied {
		if err := r.backend.OnSocketOps(fd, OpRemoved); err != nil {
			return err
		}
	}
	r.releaseStackIfIdle(co)
	return nil
}

// releaseStackIfIdle returns co's arena block once co has no remaining
// entries in byCoroutine. It is a no-op if co still has subscriptions
// elsewhere, or if it was never tracked to begin with.
func (r *Reactor) releaseStackIfIdle(co *Coroutine) {
	lo, hi := r.byCoroutine.coroutineRange(co)
	if hi > lo {
		return
	}
	block, ok := r.stacks[co]
	if !ok {
		return
	}
	delete(r.stacks, co)
	r.arena.Deallocate(block)
}

// notifyEvent resumes every coroutine subscribed to fd with a
// synthesized Event{kind, fd}, in by-fd order (coroutine identity
// ascending), then removes every coroutine that reported completion.
// If kind is Error or Hangup, fd's remaining subscriptions are removed
// afterward. Called by backend implementations from within Work.
func (r *Reactor) notifyEvent(fd int, kind EventKind) {
	lo, hi := r.bySocket.fdRange(fd)
	// Snapshot the subscriber list for this descriptor: resume() may
	// call Monitor/RemoveSocket/RemoveThread as a side effect, and
	// those changes must take effect only on the next notifyEvent, not
	// the one in progress.
	subs := append([]subscription(nil), r.bySocket.items[lo:hi]...)

	for _, sub := range subs {
		event := &Event{Kind: kind, Fd: fd}
		if !sub.co.Resume(event) {
			r.completing.Add(sub.co)
		}
	}

	for r.completing.Length() > 0 {
		co := r.completing.Remove().(*Coroutine)
		r.RemoveThread(co)
	}

	if kind == Error || kind == Hangup {
		r.RemoveSocket(fd)
	}
}
