package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a malformed time or duration string. Deadline parsing
// never silently defaults; callers that want leniency must opt in.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// Clock is a wall-clock time of day stored as minute-of-day, the unit all
// attendance deadlines compare in.
type Clock struct {
	minuteOfDay int
}

// ParseClock parses an "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, &ParseError{Input: s, Reason: "expected HH:MM"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, &ParseError{Input: s, Reason: "hour out of range"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, &ParseError{Input: s, Reason: "minute out of range"}
	}
	return Clock{minuteOfDay: hour*60 + minute}, nil
}

// MustParseClock is ParseClock for configuration constants validated at
// startup.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf extracts the minute-of-day wall clock from t in its own location.
func ClockOf(t time.Time) Clock {
	return Clock{minuteOfDay: t.Hour()*60 + t.Minute()}
}

// MinuteOfDay returns the raw minute count since midnight.
func (c Clock) MinuteOfDay() int { return c.minuteOfDay }

// BeforeOrAt reports whether c is at or before the deadline, at minute
// granularity.
func (c Clock) BeforeOrAt(deadline Clock) bool {
	return c.minuteOfDay <= deadline.minuteOfDay
}

// After reports whether c is strictly after the deadline.
func (c Clock) After(deadline Clock) bool {
	return c.minuteOfDay > deadline.minuteOfDay
}

// AtOrAfter reports whether c is at or after the given clock.
func (c Clock) AtOrAfter(other Clock) bool {
	return c.minuteOfDay >= other.minuteOfDay
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.minuteOfDay/60, c.minuteOfDay%60)
}
