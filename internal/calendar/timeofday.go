package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// TimeOfDay is a wall-clock start time
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultStart is used when an event has no start time
var DefaultStart = TimeOfDay{Hour: 10, Minute: 30}

var timePattern = regexp.MustCompile(`(?i)^(\d{1,2}):?(\d{2})\s*(am|pm)?$`)

// ParseTimeOfDay reads "10:30", "1030", "2:15pm" or "12:00 AM". Out of range
// parts are clamped; anything unreadable gives DefaultStart.
func ParseTimeOfDay(raw string) TimeOfDay {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return DefaultStart
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	hour = clamp(hour, 0, 23)
	minute = clamp(minute, 0, 59)

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return TimeOfDay{Hour: hour, Minute: minute}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromDatatype converts a stored time column; nil gives DefaultStart
func FromDatatype(t *datatypes.Time) TimeOfDay {
	if t == nil {
		return DefaultStart
	}
	d := time.Duration(*t)
	return TimeOfDay{
		Hour:   int(d / time.Hour),
		Minute: int(d % time.Hour / time.Minute),
	}
}

func (t TimeOfDay) Datatype() datatypes.Time {
	return datatypes.NewTime(t.Hour, t.Minute, 0, 0)
}

// String is the 24h "HH:MM" form
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Label is the display form, e.g. "10:30am"
func (t TimeOfDay) Label() string {
	suffix := "am"
	h := t.Hour
	if h >= 12 {
		suffix = "pm"
	}
	if h == 0 {
		h = 12
	} else if h > 12 {
		h -= 12
	}
	return fmt.Sprintf("%d:%02d%s", h, t.Minute, suffix)
}
