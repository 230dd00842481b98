package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/volcano-island/service-campsite/internal/domain/reservation"
)

// ReservationModel is the GORM model for the reservations table. The
// unique index on reservation_date is the backstop for the no-double-
// booking invariant: a race that slips past the in-transaction
// availability check fails here instead of committing.
type ReservationModel struct {
	ID                int64     `gorm:"primaryKey"`
	ReservationDate   time.Time `gorm:"type:date;uniqueIndex;not null"`
	BookingIdentifier string    `gorm:"index;not null;size:120"`
	Email             string    `gorm:"not null;size:254"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of
// reservation.Repository. Connections must be opened with
// gorm.Config{TranslateError: true} so unique-constraint violations
// surface as gorm.ErrDuplicatedKey.
type GormReservationRepository struct {
	gormStore
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{gormStore{db: db}}
}

// InTransaction runs fn against a transactional store handle. Any error
// returned by fn rolls the transaction back.
func (r *GormReservationRepository) InTransaction(ctx context.Context, fn func(ctx context.Context, tx reservation.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, gormStore{db: tx})
	})
}

// gormStore implements reservation.Store over either the root connection
// or a transaction handle.
type gormStore struct {
	db *gorm.DB
}

// FindDatesInRange retrieves reserved dates in [start, end), ascending.
func (s gormStore) FindDatesInRange(ctx context.Context, start, end time.Time) ([]reservation.ReservedDate, error) {
	var models []ReservationModel
	if err := s.db.WithContext(ctx).
		Where("reservation_date >= ? AND reservation_date < ?", start, end).
		Order("reservation_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reserved dates in range: %w", err)
	}
	return toDomainReservedDates(models), nil
}

// ExistsAnyDate reports whether any of the dates is already reserved.
func (s gormStore) ExistsAnyDate(ctx context.Context, dates []time.Time) (bool, error) {
	if len(dates) == 0 {
		return false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("reservation_date IN ?", dates).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reserved dates: %w", err)
	}
	return count > 0, nil
}

// ExistsIdentifier reports whether the booking identifier has any rows.
func (s gormStore) ExistsIdentifier(ctx context.Context, identifier string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("booking_identifier = ?", identifier).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check booking identifier: %w", err)
	}
	return count > 0, nil
}

// FindByIdentifier retrieves all reserved dates of one booking, ascending.
func (s gormStore) FindByIdentifier(ctx context.Context, identifier string) ([]reservation.ReservedDate, error) {
	var models []ReservationModel
	if err := s.db.WithContext(ctx).
		Where("booking_identifier = ?", identifier).
		Order("reservation_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservation by identifier: %w", err)
	}
	return toDomainReservedDates(models), nil
}

// SaveAll persists the rows as one batch. A unique-constraint violation on
// reservation_date means a concurrent booking won the race and is
// reported as unavailable dates.
func (s gormStore) SaveAll(ctx context.Context, rows []reservation.ReservedDate) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]ReservationModel, len(rows))
	for i, row := range rows {
		models[i] = toReservationModel(row)
	}

	if err := s.db.WithContext(ctx).Create(&models).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return reservation.ErrUnavailableDates
		}
		return fmt.Errorf("failed to save reservations: %w", err)
	}
	return nil
}

// DeleteAll removes the rows as one batch. Dates are globally unique, so
// deleting by date hits exactly the given rows.
func (s gormStore) DeleteAll(ctx context.Context, rows []reservation.ReservedDate) error {
	if len(rows) == 0 {
		return nil
	}

	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.Date
	}
	return s.DeleteByDates(ctx, dates)
}

// DeleteByDates removes the rows holding the given dates.
func (s gormStore) DeleteByDates(ctx context.Context, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).
		Where("reservation_date IN ?", dates).
		Delete(&ReservationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete reservations by date: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toReservationModel(row reservation.ReservedDate) ReservationModel {
	return ReservationModel{
		ReservationDate:   row.Date,
		BookingIdentifier: row.BookingIdentifier,
		Email:             row.Email,
	}
}

func toDomainReservedDates(models []ReservationModel) []reservation.ReservedDate {
	rows := make([]reservation.ReservedDate, len(models))
	for i, m := range models {
		rows[i] = reservation.ReservedDate{
			Date:              reservation.ToDate(m.ReservationDate),
			BookingIdentifier: m.BookingIdentifier,
			Email:             m.Email,
		}
	}
	return rows
}
