package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/models"
)

var (
	// ErrNoData means no document has been loaded yet.
	ErrNoData = errors.New("trip data not loaded")
	// ErrStaleData means the current document came from the local cache and
	// cannot be the base of an edit until a load from the server succeeds.
	ErrStaleData = errors.New("trip data was loaded from the local cache; reload before editing")
)

// Store holds the client's copy of the document. Expense edits are applied
// locally first and undone exactly when the server refuses them; structural
// day edits are confirmed by reloading the whole document.
//
// The mutex is held across the remote call, so edits from one Store are
// applied one at a time.
type Store struct {
	remote Remote
	cache  Cache

	mu            sync.Mutex
	data          *models.Trip
	authoritative bool
	loadedAt      time.Time
}

// NewStore returns an empty store. cache may be nil.
func NewStore(remote Remote, cache Cache) *Store {
	return &Store{remote: remote, cache: cache}
}

// Load fetches the document from the server and mirrors it to the cache. When
// the server cannot be reached a cache entry younger than its TTL is used
// instead and the store is marked non-authoritative.
func (s *Store) Load(ctx context.Context) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.data.Clone(), nil
}

func (s *Store) loadLocked(ctx context.Context) error {
	trip, err := s.remote.GetTripData(ctx)
	if err == nil {
		s.data = trip
		s.authoritative = true
		s.loadedAt = time.Now()
		if s.cache != nil {
			if cerr := s.cache.Save(trip); cerr != nil {
				logrus.WithError(cerr).Warn("Failed to cache trip data.")
			}
		}
		return nil
	}

	if s.cache == nil {
		return err
	}
	cached, savedAt, cerr := s.cache.Load()
	if cerr != nil {
		logrus.WithError(cerr).Debug("No cached trip data to fall back on.")
		return err
	}
	logrus.WithError(err).WithField("cached_at", savedAt.Format(time.RFC3339)).Warn("Server unreachable, showing cached trip data.")
	s.data = cached
	s.authoritative = false
	s.loadedAt = savedAt
	return nil
}

// Data returns a copy of the current document, or nil before the first load.
func (s *Store) Data() *models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Authoritative reports whether the current document came from the server.
func (s *Store) Authoritative() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authoritative
}

// LoadedAt is when the current document was fetched, or cached for a
// fallback load.
func (s *Store) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// Day returns a copy of the day with the given id.
func (s *Store) Day(dayID string) (models.Day, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return models.Day{}, false
	}
	i := s.data.FindDay(dayID)
	if i < 0 {
		return models.Day{}, false
	}
	return s.data.Days[i].Clone(), true
}

// writable returns the index of dayID in an editable document.
func (s *Store) writable(dayID string) (int, error) {
	if s.data == nil {
		return 0, ErrNoData
	}
	if !s.authoritative {
		return 0, ErrStaleData
	}
	i := s.data.FindDay(dayID)
	if i < 0 {
		return 0, fmt.Errorf("%w: day %s", itinerary.ErrNotFound, dayID)
	}
	return i, nil
}

// AddExpense appends e locally, then on the server. On failure the appended
// entry is removed again and the server's error is returned.
func (s *Store) AddExpense(ctx context.Context, dayID string, e models.Expense) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.writable(dayID)
	if err != nil {
		return models.Day{}, err
	}
	day := &s.data.Days[i]
	prev := day.Expenses
	day.Expenses = append(prev[:len(prev):len(prev)], models.Expense{Item: e.Item, Amount: e.Amount})

	saved, err := s.remote.AddExpense(ctx, dayID, e)
	if err != nil {
		day.Expenses = prev
		logrus.WithError(err).WithField("day_id", dayID).Warn("AddExpense rejected, rolled back.")
		return models.Day{}, err
	}
	if n := len(saved.Expenses); n > 0 {
		day.Expenses[len(day.Expenses)-1].ID = saved.Expenses[n-1].ID
	}
	return day.Clone(), nil
}

// UpdateExpense overwrites the referenced expense locally, then on the server.
// On failure the prior value is put back.
func (s *Store) UpdateExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef, e models.Expense) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.writable(dayID)
	if err != nil {
		return models.Day{}, err
	}
	day := &s.data.Days[i]
	j, err := ref.Resolve(day)
	if err != nil {
		return models.Day{}, err
	}
	prev := day.Expenses[j]
	day.Expenses[j].Item = e.Item
	day.Expenses[j].Amount = e.Amount

	if _, err := s.remote.UpdateExpense(ctx, dayID, ref, e); err != nil {
		day.Expenses[j] = prev
		logrus.WithError(err).WithFields(logrus.Fields{"day_id": dayID, "ref": ref.String()}).Warn("UpdateExpense rejected, rolled back.")
		return models.Day{}, err
	}
	return day.Clone(), nil
}

// DeleteExpense removes the referenced expense locally, then on the server.
// On failure it is reinserted at its original position.
func (s *Store) DeleteExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.writable(dayID)
	if err != nil {
		return models.Expense{}, err
	}
	day := &s.data.Days[i]
	j, err := ref.Resolve(day)
	if err != nil {
		return models.Expense{}, err
	}
	removed := day.Expenses[j]
	prev := day.Expenses
	rest := make([]models.Expense, 0, len(prev)-1)
	rest = append(rest, prev[:j]...)
	day.Expenses = append(rest, prev[j+1:]...)

	if _, err := s.remote.DeleteExpense(ctx, dayID, ref); err != nil {
		day.Expenses = prev
		logrus.WithError(err).WithFields(logrus.Fields{"day_id": dayID, "ref": ref.String()}).Warn("DeleteExpense rejected, rolled back.")
		return models.Expense{}, err
	}
	return removed, nil
}

// UpdateDay applies the field changes locally, sends the patch and then
// reloads the document so location changes come from the server. On failure
// the document is restored as it was.
func (s *Store) UpdateDay(ctx context.Context, dayID string, patch itinerary.DayPatch) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.writable(dayID)
	if err != nil {
		return models.Day{}, err
	}
	snapshot := s.data.Clone()
	itinerary.ApplyDayFields(&s.data.Days[i], patch.DayFields)

	day, err := s.remote.UpdateDay(ctx, dayID, patch)
	if err != nil {
		s.data = snapshot
		logrus.WithError(err).WithField("day_id", dayID).Warn("UpdateDay rejected, rolled back.")
		return models.Day{}, err
	}
	s.reloadAfterWrite(ctx, "UpdateDay")
	return day, nil
}

// AddDay inserts a day on the server and reloads. Nothing is applied locally
// first because every later day and location is renumbered.
func (s *Store) AddDay(ctx context.Context, insertAfter string, fields itinerary.DayFields) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writable(insertAfter); err != nil {
		return models.Day{}, err
	}
	day, err := s.remote.AddDay(ctx, insertAfter, fields)
	if err != nil {
		return models.Day{}, err
	}
	s.reloadAfterWrite(ctx, "AddDay")
	return day, nil
}

// DeleteDay removes a day on the server and reloads.
func (s *Store) DeleteDay(ctx context.Context, dayID string) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writable(dayID); err != nil {
		return models.Day{}, err
	}
	day, err := s.remote.DeleteDay(ctx, dayID)
	if err != nil {
		return models.Day{}, err
	}
	s.reloadAfterWrite(ctx, "DeleteDay")
	return day, nil
}

// reloadAfterWrite refreshes the document after a committed structural edit.
// The edit stands even if the reload fails; the next Load catches up.
func (s *Store) reloadAfterWrite(ctx context.Context, op string) {
	if err := s.loadLocked(ctx); err != nil {
		logrus.WithError(err).WithField("op", op).Warn("Reload after write failed.")
	}
}

// TotalExpense sums every expense in the current document.
func (s *Store) TotalExpense() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return 0
	}
	return itinerary.TotalExpense(s.data)
}

// DaysByPhase groups day ids under each declared phase.
func (s *Store) DaysByPhase() map[int][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return map[int][]string{}
	}
	return itinerary.DaysByPhase(s.data)
}

// LocationsForDay returns copies of the day's live locations by display order.
func (s *Store) LocationsForDay(dayID string) []models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil
	}
	locs := itinerary.LocationsForDay(s.data, dayID)
	for i := range locs {
		locs[i] = locs[i].Clone()
	}
	return locs
}

// Watch reloads the store whenever the server announces a change, until ctx
// is done. onChange, if set, is called after every reload attempt.
func (s *Store) Watch(ctx context.Context, wsURL string, onChange func(models.TripEvent, *models.Trip, error)) error {
	return Subscribe(ctx, wsURL, func(ev models.TripEvent) {
		trip, err := s.Load(ctx)
		if onChange != nil {
			onChange(ev, trip, err)
		}
	})
}
