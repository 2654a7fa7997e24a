package calendar

import (
	"fmt"
	"iter"
	"time"
)

type Period string

const (
	Daily   Period = "daily"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

func ParsePeriod(s string) (Period, bool) {
	switch p := Period(s); p {
	case Daily, Monthly, Yearly:
		return p, true
	}
	return "", false
}

// Label formats t as the bucket key for p. Daily and monthly buckets are day-keyed (dd/mm),
// yearly buckets are month-keyed (mm/yyyy). The same function is used to generate buckets and to
// look transactions up in them.
func Label(t time.Time, p Period) string {
	if p == Yearly {
		return fmt.Sprintf("%02d/%04d", int(t.Month()), t.Year())
	}
	return fmt.Sprintf("%02d/%02d", t.Day(), int(t.Month()))
}

// Labels yields the ordered bucket labels covering [start, end] in start's location. Each range
// over the returned sequence starts from the beginning again. Labels that repeat (a daily range
// longer than a year) are yielded once.
func Labels(p Period, start, end time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		if end.Before(start) {
			return
		}
		seen := make(map[string]struct{})
		cur := start
		if p == Yearly {
			// Step from the first of the month so AddDate never overflows into a later month.
			cur = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		}
		for !cur.After(end) {
			label := Label(cur, p)
			if _, dup := seen[label]; !dup {
				seen[label] = struct{}{}
				if !yield(label) {
					return
				}
			}
			if p == Yearly {
				cur = cur.AddDate(0, 1, 0)
			} else {
				cur = cur.AddDate(0, 0, 1)
			}
		}
	}
}
