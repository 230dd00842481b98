package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/volcano-island/service-campsite/internal/domain/reservation"
	"github.com/volcano-island/service-campsite/internal/events"
)

// ReservationService orchestrates booking creation, diff-based
// modification and cancellation. It keeps no state between calls; every
// operation re-reads the store inside one transaction so the
// no-double-booking invariant holds under concurrent callers.
type ReservationService struct {
	repo        reservation.Repository
	validator   *reservation.Validator
	publisher   *events.Publisher
	logger      *zap.Logger
	suffixBound int
}

// NewReservationService creates a new ReservationService. publisher may be
// nil, in which case lifecycle events are not emitted.
func NewReservationService(
	repo reservation.Repository,
	validator *reservation.Validator,
	publisher *events.Publisher,
	logger *zap.Logger,
	suffixBound int,
) *ReservationService {
	if suffixBound <= 0 {
		suffixBound = reservation.DefaultSuffixBound
	}
	return &ReservationService{
		repo:        repo,
		validator:   validator,
		publisher:   publisher,
		logger:      logger,
		suffixBound: suffixBound,
	}
}

// Book reserves every night in [arrivalDate, departureDate) and returns
// the generated booking identifier. Validation failures short-circuit
// before any store access.
func (s *ReservationService) Book(ctx context.Context, email, firstName, lastName, arrivalDate, departureDate string) (string, error) {
	arrival, departure, err := s.validator.ParseStayDates(arrivalDate, departureDate)
	if err != nil {
		return "", err
	}
	if err := s.validator.ValidateNames(firstName, lastName); err != nil {
		return "", err
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := s.validator.ValidateStayWindow(arrival, departure); err != nil {
		return "", err
	}

	identifier := reservation.GenerateBookingIdentifier(lastName, email, s.suffixBound)
	nights := reservation.DatesBetween(arrival, departure)

	err = s.repo.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		taken, err := tx.ExistsAnyDate(ctx, nights)
		if err != nil {
			return err
		}
		if taken {
			return reservation.ErrUnavailableDates
		}
		return tx.SaveAll(ctx, reservation.BuildReservedDates(nights, identifier, email))
	})
	if err != nil {
		return "", err
	}

	s.publishEvent(ctx, events.ReservationBooked, identifier, email, nights)
	return identifier, nil
}

// Modify reconciles an existing booking with a new stay window: dates
// newly requested are added, dates no longer requested are removed, and
// dates present in both are never touched. Both steps share one
// transaction so a failure in either leaves the booking as it was.
func (s *ReservationService) Modify(ctx context.Context, email, arrivalDate, departureDate, identifier string) error {
	if err := s.validator.ValidateEmail(email); err != nil {
		return err
	}
	if err := s.validator.ValidateBookingIdentifier(identifier); err != nil {
		return err
	}
	arrival, departure, err := s.validator.ParseStayDates(arrivalDate, departureDate)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateStayWindow(arrival, departure); err != nil {
		return err
	}

	requested := reservation.DatesBetween(arrival, departure)

	err = s.repo.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		exists, err := tx.ExistsIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		if !exists {
			return reservation.ErrNotFound
		}

		existingRows, err := tx.FindByIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		existing := make([]time.Time, len(existingRows))
		for i, row := range existingRows {
			existing[i] = reservation.ToDate(row.Date)
		}

		// Add before remove: the booking never transiently holds zero
		// dates, and no date is freed before its replacement is held.
		toAdd := subtractDates(requested, existing)
		if len(toAdd) > 0 {
			taken, err := tx.ExistsAnyDate(ctx, toAdd)
			if err != nil {
				return err
			}
			if taken {
				return reservation.ErrUnavailableDates
			}
			if err := tx.SaveAll(ctx, reservation.BuildReservedDates(toAdd, identifier, email)); err != nil {
				return err
			}
		}

		toRemove := subtractDates(existing, requested)
		if len(toRemove) > 0 {
			return tx.DeleteByDates(ctx, toRemove)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.ReservationModified, identifier, email, requested)
	return nil
}

// Cancel removes every night of the booking. A caller whose email does not
// own the booking gets the same not-found error as an unknown identifier,
// so cancellation attempts cannot probe for other guests' bookings.
func (s *ReservationService) Cancel(ctx context.Context, email, identifier string) error {
	if err := s.validator.ValidateEmail(email); err != nil {
		return err
	}
	if err := s.validator.ValidateBookingIdentifier(identifier); err != nil {
		return err
	}

	var cancelled []time.Time
	err := s.repo.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		exists, err := tx.ExistsIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		if !exists {
			return reservation.ErrNotFound
		}

		rows, err := tx.FindByIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.Email != email {
				return reservation.ErrNotFound
			}
			cancelled = append(cancelled, reservation.ToDate(row.Date))
		}
		return tx.DeleteAll(ctx, rows)
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.ReservationCancelled, identifier, email, cancelled)
	return nil
}

// subtractDates returns the dates of a not present in b, preserving order.
func subtractDates(a, b []time.Time) []time.Time {
	drop := make(map[time.Time]struct{}, len(b))
	for _, d := range b {
		drop[d] = struct{}{}
	}

	var out []time.Time
	for _, d := range a {
		if _, ok := drop[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}

func (s *ReservationService) publishEvent(ctx context.Context, eventType, identifier, email string, dates []time.Time) {
	if s.publisher == nil {
		return
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(reservation.DateLayout)
	}

	evt := events.ReservationEvent{
		BookingIdentifier: identifier,
		Email:             email,
		Dates:             formatted,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, eventType, identifier, evt); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("booking_identifier", identifier),
			zap.Error(err),
		)
	}
}
