// Package unixtime converts between broken-down Gregorian calendar fields
// and a linear count of seconds since 1970-01-01 00:00:00. It ignores leap
// seconds but respects leap years and assumes the proleptic Gregorian
// calendar. The conversions work on plain integers with no reference to a
// UTC offset, which makes them usable for both UTC and local-naive
// timestamps.
package unixtime

import "time"

// FromDateTime converts a given date and time to a Unix timestamp, i.e. the
// number of seconds since 1970-01-01 00:00:00.
// This implementation is based on the Go standard library's time package but
// does not depend on time.Location. Depending on time.Location feels weird
// for a function that deals in local-naive timestamps which have no location
// to begin with.
func FromDateTime(year int, month time.Month, day, hour, minute, second int) int64 {
	d := daysSinceEpoch(year) + daysSinceStartOfYear[month-1] + (uint64(day) - 1)
	if month > time.February && isLeap(year) {
		d++ // +leap day
	}
	abs := d*secondsPerDay + uint64(hour)*secondsPerHour + uint64(minute)*secondsPerMinute + uint64(second)
	return int64(abs) + (absoluteToInternal + internalToUnix)
}

// Date returns the calendar date of the given Unix timestamp.
// It is the inverse of FromDateTime for the date fields.
//
// This function was ported from absDate in the Go standard library's
// time package.
func Date(unix int64) (year int, month time.Month, day int) {
	d := absSeconds(unix) / secondsPerDay

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles.
	// The last cycle has one extra leap year, so on the last day
	// of that year, day / daysPer100Years will be 4 instead of 3.
	// Cut it back down to 3 by subtracting n>>2.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle.
	// The last year is a leap year, so on the last day of that year,
	// day / 365 will be 4 instead of 3. Cut it back down to 3
	// by subtracting n>>2.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday := int(d)

	if isLeap(year) {
		switch {
		case yday > 31+29-1:
			// After leap day; pretend it wasn't there.
			yday--
		case yday == 31+29-1:
			return year, time.February, 29
		}
	}

	m := yday / 31
	end := int(daysSinceStartOfYear[m+1])
	var begin int
	if yday >= end {
		m++
		begin = end
	} else {
		begin = int(daysSinceStartOfYear[m])
	}
	return year, time.Month(m + 1), yday - begin + 1
}

// Year returns the calendar year of the given Unix timestamp.
func Year(unix int64) int {
	y, _, _ := Date(unix)
	return y
}

// Weekday returns the day of the week of the given Unix timestamp.
// It works for timestamps before the epoch, too.
func Weekday(unix int64) time.Weekday {
	// January 1 of the absolute year is a Monday.
	sec := (absSeconds(unix) + uint64(time.Monday)*secondsPerDay) % secondsPerWeek
	return time.Weekday(sec / secondsPerDay)
}

// absSeconds shifts a Unix timestamp to seconds since the absolute epoch,
// which predates any representable Unix timestamp so the result is
// non-negative.
func absSeconds(unix int64) uint64 {
	return uint64(unix + unixToInternal - absoluteToInternal)
}

// daysSinceStartOfYear[m] is the number of days in a non-leap year before
// the start of month m+1.
var daysSinceStartOfYear = [...]uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}
