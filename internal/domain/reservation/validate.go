package reservation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Guest names are letter runs separated by single spaces, at most two
// spaces total ("Jo Ann Lee"). The booking identifier embeds the same name
// grammar: <name>_<local>@<domain>.<tld>_<1-7 digit suffix>.
var (
	namePattern       = regexp.MustCompile(`^[a-zA-Z]+( [a-zA-Z]+){0,2}$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z]+( [a-zA-Z]+){0,2}_[^\s@_]+@[^\s@]+\.[^\s@_]{2,}_[0-9]{1,7}$`)
)

// Validator checks raw caller input for well-formedness and business-rule
// compliance. Every public engine operation runs it before touching the
// store.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ParseStayDates validates and parses the arrival/departure date strings
// of a booking or modification request.
func (v *Validator) ParseStayDates(arrival, departure string) (time.Time, time.Time, error) {
	arrivalDate, err := ParseDate(arrival)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedArrivalDate
	}
	departureDate, err := ParseDate(departure)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedDepartureDate
	}
	return arrivalDate, departureDate, nil
}

// ParseDateParameter validates and parses a standalone date query
// parameter.
func (v *Validator) ParseDateParameter(s string) (time.Time, error) {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, ErrMalformedDateParameter
	}
	return d, nil
}

// ValidateEmail checks s against a standard email grammar.
func (v *Validator) ValidateEmail(s string) error {
	if err := v.validate.Var(s, "required,email"); err != nil {
		return ErrMalformedEmail
	}
	return nil
}

// ValidateNames checks the guest's first and last name, in that order.
func (v *Validator) ValidateNames(firstName, lastName string) error {
	if !namePattern.MatchString(firstName) {
		return ErrMalformedFirstName
	}
	if !namePattern.MatchString(lastName) {
		return ErrMalformedLastName
	}
	return nil
}

// ValidateBookingIdentifier checks the shape of a booking identifier.
func (v *Validator) ValidateBookingIdentifier(s string) error {
	if !identifierPattern.MatchString(s) {
		return ErrMalformedIdentifier
	}
	return nil
}

// ValidateStayWindow enforces the booking business rules on an
// arrival/departure pair. Checks run in a fixed order and the first
// failure wins.
func (v *Validator) ValidateStayWindow(arrival, departure time.Time) error {
	if IsPastDate(arrival) {
		return ErrDateInPast
	}
	if IsBeforeMinimumBuffer(arrival) {
		return ErrDateTooSoon
	}
	if arrival.Equal(departure) || IsAfterDate(arrival, departure) {
		return ErrDepartureTooSoon
	}
	if IsBeyondAdvanceLimit(arrival) {
		return ErrDateTooFar
	}
	if NightsBetween(arrival, departure) > MaxStayDurationDays {
		return ErrStayLimitExceeded
	}
	return nil
}

// ValidateAvailabilityWindow enforces the relaxed rules for read-only
// availability queries: the advance-booking and duration caps do not apply
// to browsing, and start == end is allowed (it yields an empty range).
func (v *Validator) ValidateAvailabilityWindow(start, end time.Time) error {
	if IsPastDate(start) {
		return ErrDateInPast
	}
	if IsAfterDate(start, end) {
		return ErrDepartureTooSoon
	}
	return nil
}
