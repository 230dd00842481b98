package reservation

import (
	"context"
	"time"
)

// Store is the set of reservation queries the engines consume. The same
// method set is available directly (read-only paths) and on the
// transaction handle passed to InTransaction.
type Store interface {
	// FindDatesInRange returns the reserved dates intersecting the
	// half-open range [start, end), in ascending date order.
	FindDatesInRange(ctx context.Context, start, end time.Time) ([]ReservedDate, error)

	// ExistsAnyDate reports whether any of the given dates is reserved,
	// regardless of which booking holds it.
	ExistsAnyDate(ctx context.Context, dates []time.Time) (bool, error)

	// ExistsIdentifier reports whether any reserved date carries the
	// given booking identifier.
	ExistsIdentifier(ctx context.Context, identifier string) (bool, error)

	// FindByIdentifier returns all reserved dates of one booking.
	FindByIdentifier(ctx context.Context, identifier string) ([]ReservedDate, error)

	// SaveAll persists the rows as a single batch.
	SaveAll(ctx context.Context, rows []ReservedDate) error

	// DeleteAll removes the rows as a single batch.
	DeleteAll(ctx context.Context, rows []ReservedDate) error

	// DeleteByDates removes the rows holding the given dates.
	DeleteByDates(ctx context.Context, dates []time.Time) error
}

// Repository is the persistence boundary of the reservation engines.
// InTransaction runs fn against a transactional Store; any error returned
// by fn rolls the whole transaction back.
type Repository interface {
	Store
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
