package application

import (
	"context"
	"sort"
	"time"

	"github.com/volcano-island/service-campsite/internal/domain/reservation"
)

// fakeRepo is an in-memory reservation.Repository with real transaction
// semantics: writes inside InTransaction stage on a copy and only reach
// the committed map when the closure succeeds. Like the real store it
// enforces one row per date.
type fakeRepo struct {
	committed map[time.Time]reservation.ReservedDate

	// deleteByDatesErr injects a fault into DeleteByDates inside the
	// next transaction.
	deleteByDatesErr error
	// reportAllFree makes ExistsAnyDate lie so a conflicting SaveAll
	// exercises the unique-constraint backstop, as a lost race would.
	reportAllFree bool

	savedDates   []time.Time
	deletedDates []time.Time
}

func newFakeRepo(rows ...reservation.ReservedDate) *fakeRepo {
	f := &fakeRepo{committed: make(map[time.Time]reservation.ReservedDate)}
	for _, row := range rows {
		f.committed[row.Date] = row
	}
	return f
}

func (f *fakeRepo) dates() []time.Time {
	out := make([]time.Time, 0, len(f.committed))
	for d := range f.committed {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (f *fakeRepo) snapshot() *fakeTx {
	rows := make(map[time.Time]reservation.ReservedDate, len(f.committed))
	for d, row := range f.committed {
		rows[d] = row
	}
	return &fakeTx{repo: f, rows: rows}
}

func (f *fakeRepo) InTransaction(ctx context.Context, fn func(ctx context.Context, tx reservation.Store) error) error {
	tx := f.snapshot()
	if err := fn(ctx, tx); err != nil {
		return err
	}
	f.committed = tx.rows
	f.savedDates = append(f.savedDates, tx.saved...)
	f.deletedDates = append(f.deletedDates, tx.deleted...)
	return nil
}

func (f *fakeRepo) FindDatesInRange(ctx context.Context, start, end time.Time) ([]reservation.ReservedDate, error) {
	return f.snapshot().FindDatesInRange(ctx, start, end)
}

func (f *fakeRepo) ExistsAnyDate(ctx context.Context, dates []time.Time) (bool, error) {
	return f.snapshot().ExistsAnyDate(ctx, dates)
}

func (f *fakeRepo) ExistsIdentifier(ctx context.Context, identifier string) (bool, error) {
	return f.snapshot().ExistsIdentifier(ctx, identifier)
}

func (f *fakeRepo) FindByIdentifier(ctx context.Context, identifier string) ([]reservation.ReservedDate, error) {
	return f.snapshot().FindByIdentifier(ctx, identifier)
}

func (f *fakeRepo) SaveAll(ctx context.Context, rows []reservation.ReservedDate) error {
	return f.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		return tx.SaveAll(ctx, rows)
	})
}

func (f *fakeRepo) DeleteAll(ctx context.Context, rows []reservation.ReservedDate) error {
	return f.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		return tx.DeleteAll(ctx, rows)
	})
}

func (f *fakeRepo) DeleteByDates(ctx context.Context, dates []time.Time) error {
	return f.InTransaction(ctx, func(ctx context.Context, tx reservation.Store) error {
		return tx.DeleteByDates(ctx, dates)
	})
}

type fakeTx struct {
	repo *fakeRepo
	rows map[time.Time]reservation.ReservedDate

	saved   []time.Time
	deleted []time.Time
}

func (t *fakeTx) FindDatesInRange(ctx context.Context, start, end time.Time) ([]reservation.ReservedDate, error) {
	var out []reservation.ReservedDate
	for d, row := range t.rows {
		if !d.Before(start) && d.Before(end) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (t *fakeTx) ExistsAnyDate(ctx context.Context, dates []time.Time) (bool, error) {
	if t.repo.reportAllFree {
		return false, nil
	}
	for _, d := range dates {
		if _, ok := t.rows[d]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) ExistsIdentifier(ctx context.Context, identifier string) (bool, error) {
	for _, row := range t.rows {
		if row.BookingIdentifier == identifier {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) FindByIdentifier(ctx context.Context, identifier string) ([]reservation.ReservedDate, error) {
	var out []reservation.ReservedDate
	for _, row := range t.rows {
		if row.BookingIdentifier == identifier {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (t *fakeTx) SaveAll(ctx context.Context, rows []reservation.ReservedDate) error {
	for _, row := range rows {
		if _, ok := t.rows[row.Date]; ok {
			return reservation.ErrUnavailableDates
		}
	}
	for _, row := range rows {
		t.rows[row.Date] = row
		t.saved = append(t.saved, row.Date)
	}
	return nil
}

func (t *fakeTx) DeleteAll(ctx context.Context, rows []reservation.ReservedDate) error {
	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.Date
	}
	return t.DeleteByDates(ctx, dates)
}

func (t *fakeTx) DeleteByDates(ctx context.Context, dates []time.Time) error {
	if err := t.repo.deleteByDatesErr; err != nil {
		return err
	}
	for _, d := range dates {
		if _, ok := t.rows[d]; ok {
			delete(t.rows, d)
			t.deleted = append(t.deleted, d)
		}
	}
	return nil
}
