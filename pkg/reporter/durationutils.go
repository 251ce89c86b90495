package reporter

import "time"

// roundDuration trims meaningless precision from durations in report output.
// Whole runs are timed in seconds, individual queries in milliseconds or less.
func roundDuration(dur time.Duration) time.Duration {
	switch {
	case dur > time.Minute:
		return dur.Round(time.Second)
	case dur > time.Second:
		return dur.Round(10 * time.Millisecond)
	case dur > time.Millisecond:
		return dur.Round(10 * time.Microsecond)
	case dur > time.Microsecond:
		return dur.Round(10 * time.Nanosecond)
	default:
		return dur
	}
}
