package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func fixed(tm time.Time) Clock {
	return func() time.Time { return tm }
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"10:30", TimeOfDay{10, 30}},
		{"1030", TimeOfDay{10, 30}},
		{" 9:05 ", TimeOfDay{9, 5}},
		{"2:15pm", TimeOfDay{14, 15}},
		{"2:15 PM", TimeOfDay{14, 15}},
		{"12:00pm", TimeOfDay{12, 0}},
		{"12:00am", TimeOfDay{0, 0}},
		{"11:45am", TimeOfDay{11, 45}},
		{"25:75", TimeOfDay{23, 59}},
		{"", DefaultStart},
		{"noon", DefaultStart},
		{"10:3", DefaultStart},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimeOfDay(tt.in))
		})
	}
}

func TestTimeOfDay_Formatting(t *testing.T) {
	assert.Equal(t, "10:30am", DefaultStart.Label())
	assert.Equal(t, "12:00pm", TimeOfDay{12, 0}.Label())
	assert.Equal(t, "12:05am", TimeOfDay{0, 5}.Label())
	assert.Equal(t, "6:00pm", TimeOfDay{18, 0}.Label())
	assert.Equal(t, "09:05", TimeOfDay{9, 5}.String())
}

func TestDatatypeRoundTrip(t *testing.T) {
	assert.Equal(t, DefaultStart, FromDatatype(nil))

	dt := TimeOfDay{14, 15}.Datatype()
	assert.Equal(t, TimeOfDay{14, 15}, FromDatatype(&dt))

	raw := datatypes.NewTime(7, 45, 0, 0)
	assert.Equal(t, TimeOfDay{7, 45}, FromDatatype(&raw))
}

func TestStateOf(t *testing.T) {
	loc := london(t)
	date := "2025-06-07"

	tests := []struct {
		name    string
		now     time.Time
		started bool
		ended   bool
	}{
		{"before start", time.Date(2025, 6, 7, 10, 29, 0, 0, loc), false, false},
		{"at start", time.Date(2025, 6, 7, 10, 30, 0, 0, loc), true, false},
		{"just after", time.Date(2025, 6, 7, 10, 31, 0, 0, loc), true, false},
		{"at end", time.Date(2025, 6, 7, 12, 30, 0, 0, loc), true, true},
		{"after end", time.Date(2025, 6, 7, 12, 31, 0, 0, loc), true, true},
		{"day before", time.Date(2025, 6, 6, 23, 0, 0, 0, loc), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := New(loc, fixed(tt.now))
			st, err := cal.StateOf(date, DefaultStart)
			require.NoError(t, err)
			assert.Equal(t, tt.started, st.Started)
			assert.Equal(t, tt.ended, st.Ended)
		})
	}
}

func TestStateOf_UsesLocationNotUTC(t *testing.T) {
	loc := london(t)
	// 09:45 UTC in June is 10:45 BST
	cal := New(loc, fixed(time.Date(2025, 6, 7, 9, 45, 0, 0, time.UTC)))
	st, err := cal.StateOf("2025-06-07", DefaultStart)
	require.NoError(t, err)
	assert.True(t, st.Started)
}

func TestStateOf_BadDate(t *testing.T) {
	cal := New(time.UTC, nil)
	_, err := cal.StateOf("07/06/2025", DefaultStart)
	assert.Error(t, err)
}

func TestNextWeekdays(t *testing.T) {
	loc := london(t)

	// Saturday morning: today is included
	cal := New(loc, fixed(time.Date(2025, 6, 7, 9, 0, 0, 0, loc)))
	assert.Equal(t, []string{"2025-06-07", "2025-06-14", "2025-06-21"}, cal.NextWeekdays(time.Saturday, 3))

	// Saturday afternoon: starts next week
	cal = New(loc, fixed(time.Date(2025, 6, 7, 12, 0, 0, 0, loc)))
	assert.Equal(t, []string{"2025-06-14", "2025-06-21"}, cal.NextWeekdays(time.Saturday, 2))

	// Wednesday
	cal = New(loc, fixed(time.Date(2025, 6, 4, 18, 0, 0, 0, loc)))
	dates := cal.NextWeekdays(time.Saturday, 12)
	assert.Len(t, dates, 12)
	assert.Equal(t, "2025-06-07", dates[0])
	assert.Equal(t, "2025-08-23", dates[11])
	for _, d := range dates {
		assert.True(t, cal.IsWeekday(d, time.Saturday), d)
	}
}

func TestMonthKey(t *testing.T) {
	key, label := MonthKey(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-01", key)
	assert.Equal(t, "January 2025", label)
}
