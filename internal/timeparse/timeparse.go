// Package timeparse resolves offset expressions and time-of-day strings
// into concrete timestamps. All functions are pure: the reference time is
// always passed in, never read from the system clock.
package timeparse

import (
	"strconv"
	"time"

	"github.com/punch-project/punch/pkg/errclass"
)

var units = map[byte]time.Duration{
	'h': time.Hour,
	'm': time.Minute,
	's': time.Second,
}

// ParseOffset parses an offset expression into a signed duration.
//
// The grammar is a sequence of <number><unit> terms with unit one of
// h, m, s, terminated by a mandatory '+' or '-'. Terms are summed and
// units may repeat: "1h90s-" is one hour and ninety seconds into the past.
func ParseOffset(expr string) (time.Duration, error) {
	if expr == "" {
		return 0, errclass.ErrParse.WithMessage("empty offset expression")
	}

	var sign time.Duration
	switch expr[len(expr)-1] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, errclass.ErrParse.WithMessagef("offset %q: missing trailing sign, expected '+' or '-'", expr)
	}

	body := expr[:len(expr)-1]
	if body == "" {
		return 0, errclass.ErrParse.WithMessagef("offset %q: expected at least one <number><unit> term", expr)
	}

	var total time.Duration
	for i := 0; i < len(body); {
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j == i {
			return 0, errclass.ErrParse.WithMessagef("offset %q: missing number before %q", expr, string(body[i]))
		}
		if j == len(body) {
			return 0, errclass.ErrParse.WithMessagef("offset %q: missing unit after %q", expr, body[i:j])
		}
		n, err := strconv.ParseInt(body[i:j], 10, 64)
		if err != nil {
			return 0, errclass.ErrParse.WithMessagef("offset %q: invalid number %q", expr, body[i:j])
		}
		unit, ok := units[body[j]]
		if !ok {
			return 0, errclass.ErrParse.WithMessagef("offset %q: unknown unit %q", expr, string(body[j]))
		}
		total += time.Duration(n) * unit
		i = j + 1
	}

	return sign * total, nil
}

// ResolveOffset applies an offset expression to the reference time.
func ResolveOffset(now time.Time, expr string) (time.Time, error) {
	d, err := ParseOffset(expr)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(d), nil
}

// ResolveClock resolves an absolute "HH:MM" time-of-day against the
// calendar date of the reference time, in the reference time's location.
// Hours outside 0..23 and minutes outside 0..59 fail, never clamp.
func ResolveClock(now time.Time, s string) (time.Time, error) {
	if len(s) != 5 || s[2] != ':' {
		return time.Time{}, errclass.ErrParse.WithMessagef("time %q: expected format HH:MM", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, errclass.ErrParse.WithMessagef("time %q: invalid hour %q", s, s[:2])
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return time.Time{}, errclass.ErrParse.WithMessagef("time %q: invalid minute %q", s, s[3:])
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, errclass.ErrParse.WithMessagef("time %q: hour %d out of range 0..23", s, hour)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, errclass.ErrParse.WithMessagef("time %q: minute %d out of range 0..59", s, minute)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// ParseHourMinute parses a "HH:MM" string into a duration, used for
// recording a completed break of fixed length.
func ParseHourMinute(s string) (time.Duration, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, errclass.ErrParse.WithMessagef("duration %q: expected format HH:MM", s)
	}
	hours, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, errclass.ErrParse.WithMessagef("duration %q: invalid hours %q", s, s[:2])
	}
	minutes, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, errclass.ErrParse.WithMessagef("duration %q: invalid minutes %q", s, s[3:])
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, errclass.ErrParse.WithMessagef("duration %q: minutes out of range 0..59", s)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// Resolve combines the two notations. An absolute time-of-day takes
// precedence over an offset expression; with both empty the reference
// time is returned unchanged.
func Resolve(now time.Time, clock, offset string) (time.Time, error) {
	if clock != "" {
		return ResolveClock(now, clock)
	}
	if offset != "" {
		return ResolveOffset(now, offset)
	}
	return now, nil
}
