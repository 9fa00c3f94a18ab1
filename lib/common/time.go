package common

import "time"

const (
	TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"

	// All phase and window durations are expressed in whole days.
	MicrosecondsPerDay int64 = 86400000000

	// A phase configured with this duration never auto-expires; it requires
	// an explicit `ForceAdvance`.
	UndefinedDurationDays int64 = -1
)

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(TIMEFORMAT_ISO8601, s)
}

// TimeToMicroseconds converts a `time.Time` to the engine's microsecond
// epoch count.
func TimeToMicroseconds(t time.Time) int64 {
	return t.UnixNano() / int64(time.Microsecond)
}

// MicrosecondsToTime is the inverse of `TimeToMicroseconds`.
func MicrosecondsToTime(us int64) time.Time {
	return time.Unix(us/1000000, (us%1000000)*int64(time.Microsecond))
}

// DaysToMicroseconds converts a whole-day duration to microseconds.
// `UndefinedDurationDays` is returned as-is; callers must check for it
// before doing arithmetic.
func DaysToMicroseconds(days int64) int64 {
	if days == UndefinedDurationDays {
		return UndefinedDurationDays
	}

	return days * MicrosecondsPerDay
}
