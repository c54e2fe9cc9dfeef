package calendar

import "time"

// NextWeekdays returns count dates ("YYYY-MM-DD") falling on wd. Today counts
// only while it is before noon; otherwise the list starts next week.
func (c *Calendar) NextWeekdays(wd time.Weekday, count int) []string {
	now := c.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)

	offset := (int(wd) - int(day.Weekday()) + 7) % 7
	if offset == 0 && now.Hour() >= 12 {
		offset = 7
	}
	first := day.AddDate(0, 0, offset)

	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, first.AddDate(0, 0, 7*i).Format(DateLayout))
	}
	return dates
}
