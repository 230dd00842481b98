package application

import (
	"context"
	"time"

	"github.com/volcano-island/service-campsite/internal/domain/reservation"
)

// AvailabilityService answers read-only availability queries against the
// reservation store.
type AvailabilityService struct {
	repo      reservation.Repository
	validator *reservation.Validator
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(repo reservation.Repository, validator *reservation.Validator) *AvailabilityService {
	return &AvailabilityService{repo: repo, validator: validator}
}

// ListAvailableDates returns every free date in [start, end), ascending.
// Only the relaxed availability rules apply: browsing may look further out
// and longer than a single stay is allowed to be.
func (s *AvailabilityService) ListAvailableDates(ctx context.Context, startDate, endDate string) ([]time.Time, error) {
	start, err := s.validator.ParseDateParameter(startDate)
	if err != nil {
		return nil, err
	}
	end, err := s.validator.ParseDateParameter(endDate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAvailabilityWindow(start, end); err != nil {
		return nil, err
	}

	taken, err := s.takenDates(ctx, start, end)
	if err != nil {
		return nil, err
	}

	free := make([]time.Time, 0)
	for _, d := range reservation.DatesBetween(start, end) {
		if _, ok := taken[d]; !ok {
			free = append(free, d)
		}
	}
	return free, nil
}

// IsDateRangeAvailable reports whether the full stay window [arrival,
// departure) is free. The complete stay-window rules apply.
func (s *AvailabilityService) IsDateRangeAvailable(ctx context.Context, arrivalDate, departureDate string) (bool, error) {
	arrival, departure, err := s.validator.ParseStayDates(arrivalDate, departureDate)
	if err != nil {
		return false, err
	}
	if err := s.validator.ValidateStayWindow(arrival, departure); err != nil {
		return false, err
	}

	taken, err := s.takenDates(ctx, arrival, departure)
	if err != nil {
		return false, err
	}
	return len(taken) == 0, nil
}

func (s *AvailabilityService) takenDates(ctx context.Context, start, end time.Time) (map[time.Time]struct{}, error) {
	rows, err := s.repo.FindDatesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	taken := make(map[time.Time]struct{}, len(rows))
	for _, row := range rows {
		taken[reservation.ToDate(row.Date)] = struct{}{}
	}
	return taken, nil
}
