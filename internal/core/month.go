package core

import "time"

// DateLayout is the canonical format of the expense date column.
const DateLayout = "2006-01-02"

// MonthRange returns the first and last calendar day of t's month, formatted
// as YYYY-MM-DD. The range is inclusive on both ends. Boundaries come from
// calendar arithmetic rather than string slicing so month length and year
// rollover are handled by the time package.
func MonthRange(t time.Time) (first, last string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// CurrentMonthRange is MonthRange over the wall clock at call time.
func CurrentMonthRange() (first, last string) {
	return MonthRange(time.Now())
}
