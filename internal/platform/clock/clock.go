package clock

import "time"

// Clock abstracts "today" so session recording and the as-of clamp stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in UTC. All dates in the system are UTC
// calendar days; normalizing here keeps the day boundary consistent across
// timezones.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
