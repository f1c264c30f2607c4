package lthreads

import (
	stdtime "time"
)

// Time is a single 64-bit signed nanosecond count, used both as a
// monotonic/wall instant and as an interval. Overflow is not checked;
// arithmetic truncates.
type Time int64

// Clock selects which OS clock Now reads.
type Clock uint8

const (
	// RealTime reads the wall clock.
	RealTime Clock = iota
	// Monotonic reads a clock unaffected by wall-clock adjustments.
	Monotonic
)

// Zero is the zero interval/instant.
func Zero() Time { return 0 }

// Secs builds a Time from a count of seconds.
func Secs(s int64) Time { return Time(s * 1e9) }

// Msecs builds a Time from a count of milliseconds.
func Msecs(ms int64) Time { return Time(ms * 1e6) }

// Usecs builds a Time from a count of microseconds.
func Usecs(us int64) Time { return Time(us * 1e3) }

// Nsecs builds a Time from a count of nanoseconds.
func Nsecs(ns int64) Time { return Time(ns) }

// FromDuration converts a standard library Duration to a Time.
func FromDuration(d stdtime.Duration) Time { return Time(d) }

// Duration converts a Time to a standard library Duration.
func (t Time) Duration() stdtime.Duration { return stdtime.Duration(t) }

// FromStdTime converts a wall-clock time.Time to a Time counting
// nanoseconds since the Unix epoch.
func FromStdTime(tm stdtime.Time) Time { return Time(tm.UnixNano()) }

// StdTime converts a Time (interpreted as nanoseconds since the Unix
// epoch) back to a standard library time.Time in UTC.
func (t Time) StdTime() stdtime.Time { return stdtime.Unix(0, int64(t)).UTC() }

// Now returns the current instant read from the requested clock.
func Now(clock Clock) Time {
	switch clock {
	case Monotonic:
		return Time(monotonicNow())
	default:
		return Time(stdtime.Now().UnixNano())
	}
}

// Secs returns the number of whole seconds represented by t.
func (t Time) Secs() int64 { return int64(t) / 1e9 }

// Msecs returns the number of whole milliseconds represented by t.
func (t Time) Msecs() int64 { return int64(t) / 1e6 }

// Usecs returns the number of whole microseconds represented by t.
func (t Time) Usecs() int64 { return int64(t) / 1e3 }

// Nsecs returns the raw nanosecond count.
func (t Time) Nsecs() int64 { return int64(t) }

// Add returns t+rhs.
func (t Time) Add(rhs Time) Time { return t + rhs }

// Sub returns t-rhs.
func (t Time) Sub(rhs Time) Time { return t - rhs }

// Neg returns -t.
func (t Time) Neg() Time { return -t }

// Mul returns t scaled by n.
func (t Time) Mul(n int64) Time { return Time(int64(t) * n) }

// Less, Greater, LessEqual, GreaterEqual, Equal implement the total
// order over Time; comparison is just integer comparison, exposed as
// methods for parity with DateTime's operator overloads.
func (t Time) Less(rhs Time) bool         { return t < rhs }
func (t Time) Greater(rhs Time) bool      { return t > rhs }
func (t Time) LessEqual(rhs Time) bool    { return t <= rhs }
func (t Time) GreaterEqual(rhs Time) bool { return t >= rhs }
func (t Time) Equal(rhs Time) bool        { return t == rhs }

// DecomposedTime is the UTC calendar breakdown of a Time.
type DecomposedTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Nanos  int
}

const (
	nanosPerSecond = int64(1e9)
	nanosPerDay    = nanosPerSecond * 86400
	secondsPerDay  = int64(86400)

	// dayTableDays bounds the epoch/calendar lookup table: enough days
	// to precompute out to roughly the year 2243.
	dayTableDays = 100000
)

type civilDate struct {
	year, month, day int32
}

var dayTable [dayTableDays]civilDate

func init() {
	for day := 0; day < dayTableDays; day++ {
		dayTable[day] = civilFromDays(int64(day))
	}
}

// civilFromDays converts a count of days since 1970-01-01 to a
// proleptic Gregorian (year, month, day), using Howard Hinnant's
// well-known days_from_civil algorithm inverse. Precomputing it into
// dayTable gives Decompose a constant-time lookup instead of running
// the conversion on every call.
func civilFromDays(z int64) civilDate {
	z += 719468
	era := z
	if z < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return civilDate{year: int32(y), month: int32(m), day: int32(d)}
}

// Decompose breaks t (interpreted as nanoseconds since the Unix epoch)
// into a UTC calendar date and time of day.
func (t Time) Decompose() DecomposedTime {
	epoch := t.Secs()
	nanos := int64(t) % nanosPerSecond
	if nanos < 0 {
		nanos += nanosPerSecond
		epoch--
	}
	days := epoch / secondsPerDay
	seconds := epoch % secondsPerDay
	if seconds < 0 {
		seconds += secondsPerDay
		days--
	}

	var cd civilDate
	if days >= 0 && days < dayTableDays {
		cd = dayTable[days]
	} else {
		cd = civilFromDays(days)
	}

	return DecomposedTime{
		Year:   int(cd.year),
		Month:  int(cd.month),
		Day:    int(cd.day),
		Hour:   int(seconds / 3600),
		Minute: int((seconds / 60) % 60),
		Second: int(seconds % 60),
		Nanos:  int(nanos),
	}
}

// Round returns the multiple of interval nearest to t, ties rounding
// away from zero. Round(0) is the identity. A negative interval rounds by
// its absolute value.
func (t Time) Round(interval Time) Time {
	intns := int64(interval)
	if intns == 0 {
		return t
	}
	if intns < 0 {
		intns = -intns
	}

	ns := int64(t)
	rem := ns % intns
	if rem > 0 && rem >= intns-rem {
		return Time(ns - rem + intns)
	}
	if rem < 0 && -rem >= intns+rem {
		return Time(ns - rem - intns)
	}
	return Time(ns - rem)
}

// Advance steps *t forward by whole multiples of interval until it
// strictly exceeds target, returning whether it changed. If *t already
// exceeds target, Advance leaves it untouched and returns false. The
// result is always the least v = *t + k*interval with v > target and
// k >= 1.
func (t *Time) Advance(target, interval Time) bool {
	if *t > target {
		return false
	}

	v0 := int64(*t)
	step := int64(interval)
	diff := int64(target) - v0
	k := diff/step + 1

	*t = Time(v0 + k*step)
	return true
}

// Format renders t as the fixed-width layout
// "YYYYMMDD-HH:MM:SS.NNNNNNNNN".
func (t Time) Format() string {
	d := t.Decompose()
	buf := make([]byte, 27)
	putPadded(buf[0:4], d.Year)
	putPadded(buf[4:6], d.Month)
	putPadded(buf[6:8], d.Day)
	buf[8] = '-'
	putPadded(buf[9:11], d.Hour)
	buf[11] = ':'
	putPadded(buf[12:14], d.Minute)
	buf[14] = ':'
	putPadded(buf[15:17], d.Second)
	buf[17] = '.'
	putPadded(buf[18:27], d.Nanos)
	return string(buf)
}

// FormatTime renders the time-of-day portion of t as "HH:MM:SS.NNNNNNNNN".
func (t Time) FormatTime() string {
	d := t.Decompose()
	buf := make([]byte, 18)
	putPadded(buf[0:2], d.Hour)
	buf[2] = ':'
	putPadded(buf[3:5], d.Minute)
	buf[5] = ':'
	putPadded(buf[6:8], d.Second)
	buf[8] = '.'
	putPadded(buf[9:18], d.Nanos)
	return string(buf)
}

func putPadded(dst []byte, v int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte('0' + v%10)
		v /= 10
	}
}
