// Package calendar holds the pure date arithmetic behind savings plans and charts:
// month-name lookup, days in a month, period labels and inclusive day bounds.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based index of an English month name. Matching ignores case
// and surrounding space.
func MonthIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			return i, true
		}
	}
	return -1, false
}

// CanonicalMonth normalises a month name to the form plans are stored under ("march" -> "March").
func CanonicalMonth(name string) (string, bool) {
	i, ok := MonthIndex(name)
	if !ok {
		return "", false
	}
	return monthNames[i], true
}

func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// ParseYear accepts the four-digit year strings plans are keyed by.
func ParseYear(year string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", year)
	}
	return y, nil
}

// PeriodOf returns the (month, year) key of the plan covering t in loc.
func PeriodOf(t time.Time, loc *time.Location) (month, year string) {
	lt := t.In(loc)
	return MonthName(lt.Month()), strconv.Itoa(lt.Year())
}

// DaysInMonth uses day 0 of the following month, so December rolls into January of year+1
// like any other month.
func DaysInMonth(month string, year int) (int, error) {
	i, ok := MonthIndex(month)
	if !ok {
		return 0, fmt.Errorf("unknown month %q", month)
	}
	return time.Date(year, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// ParseDate reads either a plain YYYY-MM-DD day (interpreted in loc) or an RFC 3339 instant.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.In(loc), nil
}

// DayBounds widens [start, end] to whole calendar days in loc: 00:00:00.000 on the first day
// through 23:59:59.999 on the last.
func DayBounds(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	s := start.In(loc)
	e := end.In(loc)
	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	to := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return from, to
}
