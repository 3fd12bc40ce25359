// Package timeslot does wall-clock arithmetic on "HH:MM" strings by way of
// minutes since midnight.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultStep is the slot granularity offered to patients.
	DefaultStep = 30

	minutesPerDay = 24 * 60
	DateLayout    = "2006-01-02"
)

var (
	ErrInvalidClock = errors.New("invalid time format, use HH:MM")
	ErrInvalidDate  = errors.New("invalid date format, use YYYY-MM-DD")
)

// Clock is a wall-clock time of day expressed in minutes since midnight.
type Clock int

// Parse accepts "H:MM" or "HH:MM" in 24-hour form.
func Parse(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	if !digitsOnly(parts[0]) || !digitsOnly(parts[1]) {
		return 0, ErrInvalidClock
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidClock
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidClock
	}

	return Clock(hours*60 + minutes), nil
}

// digitsOnly rejects the signs strconv.Atoi would otherwise accept.
func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize rewrites s into canonical zero-padded "HH:MM".
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Add carries minute overflow into the hour and wraps at midnight.
func (c Clock) Add(minutes int) Clock {
	m := (int(c) + minutes) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return Clock(m)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Generate returns every instant from start, stepping by step minutes, that is
// strictly before end.
func Generate(start, end Clock, step int) []string {
	if step <= 0 || start >= end {
		return []string{}
	}

	slots := make([]string, 0, (int(end)-int(start)+step-1)/step)
	for current := int(start); current < int(end); current += step {
		slots = append(slots, Clock(current).String())
	}
	return slots
}

// ParseDate parses a calendar date in YYYY-MM-DD form at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DateOnly strips the time-of-day from t, keeping the calendar date of t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the lowercase English weekday name of date, e.g. "monday".
func Weekday(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// At combines a calendar date and a clock into an instant in loc.
func At(date time.Time, c Clock, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc)
}
