package timeutil

import (
	"math"
	"time"
)

// DayKeyLayout is the calendar-day key format used by the mission log
// uniqueness index.
const DayKeyLayout = "2006-01-02"

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey returns the calendar-day key for t, e.g. "2025-08-30".
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// WholeDaysBetween returns the number of whole calendar days from a to b,
// both truncated to midnight first. A same-day pair yields 0, yesterday to
// today yields 1. Rounding absorbs the 23/25-hour days around DST changes.
func WholeDaysBetween(a, b time.Time) int {
	sa := StartOfDay(a)
	sb := StartOfDay(b.In(a.Location()))
	return int(math.Round(sb.Sub(sa).Hours() / 24))
}

// WeekRange returns [start, end) for the calendar week containing now.
// weekStart is the weekday the week begins on (Sunday matches the mobile
// client's convention and is the default).
func WeekRange(now time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	day := StartOfDay(now)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// MonthRange returns [start, end) for the calendar month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
