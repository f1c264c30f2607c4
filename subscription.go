package lthreads

import (
	"sort"
	"unsafe"
)

// subscription is a descriptor/coroutine pair: a non-negative
// descriptor and a coroutine handle.
type subscription struct {
	fd int
	co *Coroutine
}

// identity returns a coroutine's address as an ordering key, standing
// in for a pointer comparison over the coroutine handle.
func identity(c *Coroutine) uintptr { return uintptr(unsafe.Pointer(c)) }

// subscriptionSet is a flat, sorted slice implementing an ordered
// container over subscriptions: O(log n) lookup via binary search,
// O(n) insert/erase via a contiguous shift. The design expects small
// n (a handful of subscribers per descriptor, a handful of
// descriptors per coroutine), so the shift cost stays negligible.
type subscriptionSet struct {
	items []subscription
	less  func(a, b subscription) bool
}

func newSubscriptionSet(less func(a, b subscription) bool) *subscriptionSet {
	return &subscriptionSet{less: less}
}

func bySocketLess(a, b subscription) bool {
	if a.fd != b.fd {
		return a.fd < b.fd
	}
	return identity(a.co) < identity(b.co)
}

func byCoroutineLess(a, b subscription) bool {
	ai, bi := identity(a.co), identity(b.co)
	if ai != bi {
		return ai < bi
	}
	return a.fd < b.fd
}

func (s *subscriptionSet) size() int { return len(s.items) }

// find returns the index sub belongs at (whether or not it is present)
// and whether it is already present.
func (s *subscriptionSet) find(sub subscription) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool { return !s.less(s.items[i], sub) })
	if i < len(s.items) && !s.less(sub, s.items[i]) {
		return i, true
	}
	return i, false
}

// insert adds sub if not already present, returning whether it was
// inserted. Re-inserting an identical (fd, coroutine) pair is a no-op:
// Monitor is defined to be idempotent rather than to duplicate a
// subscription.
func (s *subscriptionSet) insert(sub subscription) bool {
	i, found := s.find(sub)
	if found {
		return false
	}
	s.items = append(s.items, subscription{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = sub
	return true
}

// erase removes sub if present, returning whether it was removed.
func (s *subscriptionSet) erase(sub subscription) bool {
	i, found := s.find(sub)
	if !found {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// eraseRange removes items in the half-open index range [lo, hi) and
// returns them.
func (s *subscriptionSet) eraseRange(lo, hi int) []subscription {
	if lo >= hi {
		return nil
	}
	removed := append([]subscription(nil), s.items[lo:hi]...)
	s.items = append(s.items[:lo], s.items[hi:]...)
	return removed
}

// lowerBound returns the first index i for which before(items[i]) is
// false; before must be monotonic (true for a prefix, false
// afterwards) with respect to the set's order.
func (s *subscriptionSet) lowerBound(before func(subscription) bool) int {
	return sort.Search(len(s.items), func(i int) bool { return !before(s.items[i]) })
}

// fdRange returns the half-open index range of subscriptions for fd in
// a bySocket-ordered set.
func (s *subscriptionSet) fdRange(fd int) (lo, hi int) {
	lo = s.lowerBound(func(sub subscription) bool { return sub.fd < fd })
	hi = s.lowerBound(func(sub subscription) bool { return sub.fd <= fd })
	return
}

// coroutineRange returns the half-open index range of subscriptions for
// co in a byCoroutine-ordered set.
func (s *subscriptionSet) coroutineRange(co *Coroutine) (lo, hi int) {
	id := identity(co)
	lo = s.lowerBound(func(sub subscription) bool { return identity(sub.co) < id })
	hi = s.lowerBound(func(sub subscription) bool { return identity(sub.co) <= id })
	return
}
