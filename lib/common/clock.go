package common

import (
	"time"

	"github.com/beevik/ntp"
)

// Clock supplies the current time as a microsecond epoch count. Engines
// never read the wall clock themselves; every time-gated operation takes
// `now` from its caller, and callers take it from a `Clock`.
type Clock interface {
	Now() int64
}

// LocalClock reads the operating system clock.
type LocalClock struct{}

func (LocalClock) Now() int64 {
	return TimeToMicroseconds(time.Now())
}

// NTPClock corrects the local clock by an offset queried from an NTP host.
// The offset is fixed at construction; governance deadlines span days, so a
// single query per process is plenty.
type NTPClock struct {
	offset time.Duration
}

func NewNTPClock(host string) (*NTPClock, error) {
	resp, err := ntp.Query(host)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}

	return &NTPClock{offset: resp.ClockOffset}, nil
}

func (c *NTPClock) Now() int64 {
	return TimeToMicroseconds(time.Now().Add(c.offset))
}

// FixedClock always reports the same instant; test helper.
type FixedClock int64

func (c FixedClock) Now() int64 {
	return int64(c)
}
