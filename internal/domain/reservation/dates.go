package reservation

import "time"

// DateLayout is the ISO-8601 calendar date format used on the wire and in
// the store.
const DateLayout = "2006-01-02"

// Today returns the current calendar date at UTC midnight.
func Today() time.Time {
	return ToDate(time.Now().UTC())
}

// ToDate truncates t to day granularity in UTC.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsPastDate reports whether d falls before today.
func IsPastDate(d time.Time) bool {
	return d.Before(Today())
}

// IsBeforeMinimumBuffer reports whether d falls before the earliest
// bookable date (today plus the minimum buffer).
func IsBeforeMinimumBuffer(d time.Time) bool {
	return d.Before(Today().AddDate(0, 0, MinReservationBufferDays))
}

// IsBeyondAdvanceLimit reports whether d falls after the furthest bookable
// date (today plus the advance window).
func IsBeyondAdvanceLimit(d time.Time) bool {
	return d.After(Today().AddDate(0, 0, MaxAdvanceReservationDays))
}

// IsAfterDate reports whether a strictly follows b.
func IsAfterDate(a, b time.Time) bool {
	return a.After(b)
}

// DatesBetween expands the half-open range [start, end) into ascending
// calendar dates. An empty or inverted range yields no dates.
func DatesBetween(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// NightsBetween counts the nights in [arrival, departure).
func NightsBetween(arrival, departure time.Time) int {
	return int(departure.Sub(arrival) / (24 * time.Hour))
}
