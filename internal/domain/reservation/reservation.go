package reservation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/volcano-island/service-campsite/internal/domain"
)

// Business rules for the single shared campsite, in days.
const (
	MaxStayDurationDays       = 3
	MaxAdvanceReservationDays = 31
	MinReservationBufferDays  = 1
)

// DefaultSuffixBound caps the random identifier suffix at seven digits.
const DefaultSuffixBound = 10_000_000

var (
	ErrMalformedArrivalDate   = domain.NewInvalidInputError("The arrival date does not match expected format. e.g. (2001-01-01)")
	ErrMalformedDepartureDate = domain.NewInvalidInputError("The departure date does not match expected format. e.g. (2001-01-01)")
	ErrMalformedDateParameter = domain.NewInvalidInputError("The date parameter does not match the expected format. e.g. (2001-01-01)")
	ErrMalformedEmail         = domain.NewInvalidInputError("Invalid Email Provided.")
	ErrMalformedFirstName     = domain.NewInvalidInputError("Invalid First Name provided.")
	ErrMalformedLastName      = domain.NewInvalidInputError("Invalid Last Name provided.")
	ErrMalformedIdentifier    = domain.NewInvalidInputError("Invalid booking identifier provided.")

	ErrDateInPast        = domain.NewInvalidInputError("Reservation start date must be in the future.")
	ErrDateTooSoon       = domain.NewInvalidInputError(fmt.Sprintf("Reservation must be at least %d day(s) in the future.", MinReservationBufferDays))
	ErrDepartureTooSoon  = domain.NewInvalidInputError("The departure date must be after the arrival date.")
	ErrDateTooFar        = domain.NewInvalidInputError(fmt.Sprintf("Reservation arrival date must be within %d day(s).", MaxAdvanceReservationDays))
	ErrStayLimitExceeded = domain.NewInvalidInputError(fmt.Sprintf("Reservation cap reached. Max allowed duration is %d day(s).", MaxStayDurationDays))

	ErrUnavailableDates = domain.NewConflictError("One of the selected date(s) is not available.")
	ErrNotFound         = domain.NewNotFoundError("Reservation does not exist.")
)

// ReservedDate is one campsite night held by a booking. The store enforces
// at most one row per calendar date.
type ReservedDate struct {
	Date              time.Time
	BookingIdentifier string
	Email             string
}

// BuildReservedDates materializes one ReservedDate per night, all sharing
// the given identifier and contact email.
func BuildReservedDates(dates []time.Time, identifier, email string) []ReservedDate {
	rows := make([]ReservedDate, len(dates))
	for i, d := range dates {
		rows[i] = ReservedDate{
			Date:              d,
			BookingIdentifier: identifier,
			Email:             email,
		}
	}
	return rows
}

// GenerateBookingIdentifier composes "<lastName>_<email>_<suffix>" with a
// pseudorandom suffix in [0, suffixBound). Suffixes are not checked for
// collisions, so two bookings can in principle share an identifier.
func GenerateBookingIdentifier(lastName, email string, suffixBound int) string {
	return fmt.Sprintf("%s_%s_%d", lastName, email, rand.IntN(suffixBound))
}
