//go:build darwin || netbsd || freebsd || openbsd || dragonfly

package internal

import (
	"os"

	"golang.org/x/sys/unix"
)

// Kqueue wraps a kqueue instance registered for EVFILT_READ. It carries
// no callback machinery of its own, since dispatch is the root
// package's job.
type Kqueue struct {
	kq         int
	changelist []unix.Kevent_t
	eventlist  []unix.Kevent_t
}

func NewKqueue(maxEvents int) (*Kqueue, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, os.NewSyscallError("kqueue", err)
	}
	if maxEvents <= 0 {
		maxEvents = 256
	}
	return &Kqueue{kq: kq, eventlist: make([]unix.Kevent_t, maxEvents)}, nil
}

// Add registers fd for read readiness. EV_CLEAR is intentionally
// omitted: the reactor re-arms via Monitor rather than relying on
// edge-triggered delivery.
func (k *Kqueue) Add(fd int) error {
	_, err := unix.Kevent(k.kq, []unix.Kevent_t{{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_READ,
		Flags:  unix.EV_ADD,
	}}, nil, nil)
	if err != nil {
		return os.NewSyscallError("kevent(add)", err)
	}
	return nil
}

// Remove deregisters fd. As with Epoll.Remove, removing an entry the
// kernel already dropped is not an error.
func (k *Kqueue) Remove(fd int) error {
	_, err := unix.Kevent(k.kq, []unix.Kevent_t{{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_READ,
		Flags:  unix.EV_DELETE,
	}}, nil, nil)
	if err != nil && err != unix.ENOENT && err != unix.EBADF {
		return os.NewSyscallError("kevent(del)", err)
	}
	return nil
}

func (k *Kqueue) Wait(timeoutMs int, dst []Report) ([]Report, error) {
	var timeout *unix.Timespec
	if timeoutMs >= 0 {
		ts := unix.NsecToTimespec(int64(timeoutMs) * 1e6)
		timeout = &ts
	}

	n, err := unix.Kevent(k.kq, k.changelist, k.eventlist, timeout)
	k.changelist = k.changelist[:0]
	if err != nil {
		if err == unix.EINTR {
			return dst, nil
		}
		return dst, os.NewSyscallError("kevent(wait)", err)
	}

	for i := 0; i < n; i++ {
		ev := &k.eventlist[i]
		fd := int(ev.Ident)
		// Independent checks, not mutually exclusive: EV_ERROR and
		// EV_EOF can both be set on the same kevent, and each fires
		// its own report.
		reported := false
		if ev.Flags&unix.EV_ERROR != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Error})
			reported = true
		}
		if ev.Flags&unix.EV_EOF != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Hangup})
			reported = true
		}
		if !reported {
			dst = append(dst, Report{Fd: fd, Kind: Read})
		}
	}
	return dst, nil
}

func (k *Kqueue) Close() error {
	return unix.Close(k.kq)
}
