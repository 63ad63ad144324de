package ranking

import "time"

// DailyWindow is the previous calendar day in loc: from yesterday's midnight
// to today's midnight, both taken in loc.
func DailyWindow(now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Period{Start: end.Add(-24 * time.Hour), End: end}
}
