package finance

import "time"

// MonthBounds returns [first day of t's month, first day of next month) in loc
func MonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PreviousMonthBounds returns the bounds of the month before t's month
func PreviousMonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start, _ := MonthBounds(t, loc)
	return start.AddDate(0, -1, 0), start
}

// DayBounds returns [midnight of t's day, next midnight) in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
