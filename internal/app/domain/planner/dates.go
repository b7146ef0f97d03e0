package planner

import "time"

// DateLayout is the ISO calendar-date representation used everywhere in the
// planner. No time component.
const DateLayout = "2006-01-02"

// ComputeEndDate returns start plus days calendar days, or ("", false) when
// start does not parse as an ISO date or days is not positive. Calendar-correct
// addition: month and year rollover and leap years are handled by time.AddDate.
func ComputeEndDate(start string, days int) (string, bool) {
	if start == "" || days <= 0 {
		return "", false
	}

	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", false
	}

	return startDate.AddDate(0, 0, days).Format(DateLayout), true
}

// parseDate reports whether value is a valid ISO calendar date.
func parseDate(value string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
