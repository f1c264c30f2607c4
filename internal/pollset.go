//go:build unix

package internal

import (
	"os"

	"golang.org/x/sys/unix"
)

// PollSet is a portable, kernel-registration-free readiness backend:
// interest is tracked in a plain map and only compiled into the dense
// []unix.PollFd array unix.Poll needs when it's actually stale, so a
// burst of Add/Remove calls between two Wait calls costs one rebuild,
// not one per call.
type PollSet struct {
	interest map[int]bool
	dense    []unix.PollFd
	dirty    bool
	rebuilds int
}

func NewPollSet() *PollSet {
	return &PollSet{interest: make(map[int]bool)}
}

// Add registers fd for read, error and hangup notification.
func (p *PollSet) Add(fd int) error {
	if p.interest[fd] {
		return nil
	}
	p.interest[fd] = true
	p.dirty = true
	return nil
}

// Remove deregisters fd. Removing an fd not currently registered is a
// no-op, matching Epoll.Remove/Kqueue.Remove's tolerance of stale
// entries.
func (p *PollSet) Remove(fd int) error {
	if !p.interest[fd] {
		return nil
	}
	delete(p.interest, fd)
	p.dirty = true
	return nil
}

// Rebuilds returns the number of times the dense array has been
// recompiled from the interest map, exposed for tests asserting the
// delayed-rebuild property.
func (p *PollSet) Rebuilds() int { return p.rebuilds }

func (p *PollSet) rebuild() {
	if !p.dirty {
		return
	}
	p.dense = p.dense[:0]
	for fd := range p.interest {
		p.dense = append(p.dense, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	p.dirty = false
	p.rebuilds++
}

func (p *PollSet) Wait(timeoutMs int, dst []Report) ([]Report, error) {
	p.rebuild()

	if len(p.dense) == 0 {
		return dst, nil
	}

	n, err := unix.Poll(p.dense, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return dst, nil
		}
		return dst, os.NewSyscallError("poll", err)
	}
	if n == 0 {
		return dst, nil
	}

	for i := range p.dense {
		revents := p.dense[i].Revents
		if revents == 0 {
			continue
		}
		fd := int(p.dense[i].Fd)
		// Independent checks, not mutually exclusive: POLLIN and
		// POLLERR/POLLHUP can both be set in revents, and each bit
		// that fires reports its own event.
		if revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Error})
		}
		if revents&unix.POLLHUP != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Hangup})
		}
		if revents&unix.POLLIN != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Read})
		}
	}
	return dst, nil
}
