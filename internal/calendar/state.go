package calendar

import (
	"fmt"
	"time"
)

// SessionLength is how long a session runs after its start
const SessionLength = 2 * time.Hour

// DateLayout is the stored event date format
const DateLayout = "2006-01-02"

// Clock lets tests pin "now"
type Clock func() time.Time

// Calendar answers time questions about events in one timezone
type Calendar struct {
	loc *time.Location
	now Clock
}

func New(loc *time.Location, now Clock) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

func (c *Calendar) Location() *time.Location { return c.loc }

// Now is the current time in the calendar's zone
func (c *Calendar) Now() time.Time { return c.now().In(c.loc) }

// ParseDate validates a "YYYY-MM-DD" event date
func (c *Calendar) ParseDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date %q: %w", date, err)
	}
	return d, nil
}

// Start is the moment the event on date begins
func (c *Calendar) Start(date string, at TimeOfDay) (time.Time, error) {
	d, err := c.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), at.Hour, at.Minute, 0, 0, c.loc), nil
}

// State describes where an event is relative to now
type State struct {
	Start   time.Time
	Started bool
	Ended   bool
}

// StateOf reports whether the event has started (now >= start) or ended
// (now >= start + SessionLength).
func (c *Calendar) StateOf(date string, at TimeOfDay) (State, error) {
	start, err := c.Start(date, at)
	if err != nil {
		return State{}, err
	}
	now := c.Now()
	return State{
		Start:   start,
		Started: !now.Before(start),
		Ended:   !now.Before(start.Add(SessionLength)),
	}, nil
}

// IsWeekday reports whether date falls on wd
func (c *Calendar) IsWeekday(date string, wd time.Weekday) bool {
	d, err := c.ParseDate(date)
	if err != nil {
		return false
	}
	return d.Weekday() == wd
}

// MonthKey groups dates by month: "2006-01" and "January 2006"
func MonthKey(d time.Time) (key, label string) {
	return d.Format("2006-01"), d.Format("January 2006")
}
