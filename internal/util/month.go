package util

import "time"

// PreviousMonth returns the year and month for the previous month.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns midnight UTC on the first day of the given month.
func FirstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// ValidYearMonth reports whether the pair denotes a real calendar month within
// the supported reporting range.
func ValidYearMonth(year, month int) bool {
	return month >= 1 && month <= 12 && year >= 1970 && year <= 2200
}
