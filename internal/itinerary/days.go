package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"trip_tracker/internal/models"
)

const (
	defaultDistance  = "200km"
	defaultElevation = "3000m"
	defaultPhase     = 1
)

// DayFields are the editable fields of a day. A nil field is left unchanged.
type DayFields struct {
	Date      *string   `json:"date,omitempty"`
	Route     *string   `json:"route,omitempty"`
	Distance  *string   `json:"distance,omitempty"`
	Elevation *string   `json:"elevation,omitempty"`
	Stay      *string   `json:"stay,omitempty"`
	Phase     *int      `json:"phase,omitempty"`
	Spots     *[]string `json:"spots,omitempty"`
}

// DayPatch is the body of a day update: fields plus an optional full list of
// the day's locations.
type DayPatch struct {
	DayFields
	Locations *[]LocationInput `json:"locations,omitempty"`
}

// ApplyDayFields copies every present field onto day. id and expenses are
// never touched.
func ApplyDayFields(day *models.Day, f DayFields) {
	if f.Date != nil {
		day.Date = *f.Date
	}
	if f.Route != nil {
		day.Route = *f.Route
	}
	if f.Distance != nil {
		day.Distance = *f.Distance
	}
	if f.Elevation != nil {
		day.Elevation = *f.Elevation
	}
	if f.Stay != nil {
		day.Stay = *f.Stay
	}
	if f.Phase != nil {
		day.Phase = *f.Phase
	}
	if f.Spots != nil {
		day.Spots = append([]string{}, (*f.Spots)...)
	}
}

// newDay builds a day from caller fields; empty values fall back to defaults.
func newDay(id string, f DayFields) models.Day {
	day := models.Day{
		ID:        id,
		Distance:  defaultDistance,
		Elevation: defaultElevation,
		Phase:     defaultPhase,
		Spots:     []string{},
		Expenses:  []models.Expense{},
	}
	if f.Date != nil {
		day.Date = *f.Date
	}
	if f.Route != nil {
		day.Route = *f.Route
	}
	if f.Distance != nil && *f.Distance != "" {
		day.Distance = *f.Distance
	}
	if f.Elevation != nil && *f.Elevation != "" {
		day.Elevation = *f.Elevation
	}
	if f.Stay != nil {
		day.Stay = *f.Stay
	}
	if f.Phase != nil && *f.Phase != 0 {
		day.Phase = *f.Phase
	}
	if f.Spots != nil {
		day.Spots = append([]string{}, (*f.Spots)...)
	}
	return day
}

// insertPosition reads the day number of an insert position. The "D" prefix
// is optional, so "D3" and "3" both mean day 3.
func insertPosition(s string) (int, bool) {
	if n, ok := DayNumber(s); ok {
		return n, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// InsertDayAfter inserts a new day right after insertAfterID, shifts the ids of
// every later day up by one and rewrites location day references to match.
// It returns the new day.
func InsertDayAfter(trip *models.Trip, insertAfterID string, f DayFields) (models.Day, error) {
	insertNum, ok := insertPosition(insertAfterID)
	if !ok {
		return models.Day{}, fmt.Errorf("%w: invalid insert position %q", ErrNotFound, insertAfterID)
	}

	pos := -1
	for i, d := range trip.Days {
		if n, ok := DayNumber(d.ID); ok && n == insertNum {
			pos = i
			break
		}
	}
	if pos < 0 {
		return models.Day{}, fmt.Errorf("%w: insert position %s", ErrNotFound, insertAfterID)
	}

	day := newDay(models.DayID(insertNum+1), f)

	// new ids come from each day's original number, never from a rewritten one
	days := make([]models.Day, 0, len(trip.Days)+1)
	days = append(days, trip.Days[:pos+1]...)
	days = append(days, day)
	for _, d := range trip.Days[pos+1:] {
		if n, ok := DayNumber(d.ID); ok && n > insertNum {
			d.ID = models.DayID(n + 1)
		}
		days = append(days, d)
	}
	trip.Days = days

	shift := func(n int) int {
		if n >= insertNum+1 {
			return n + 1
		}
		return n
	}
	for i := range trip.Locations {
		loc := &trip.Locations[i]
		if loc.Day.IsZero() {
			continue
		}
		loc.Day = loc.Day.Map(shift)
	}

	trip.TotalDays = len(trip.Days)
	return day, nil
}

// DeleteDay removes dayID, shifts the ids of every later day down by one and
// reconciles location day references. A location pointing only at the removed
// day is soft-deleted. It returns the removed day.
func DeleteDay(trip *models.Trip, dayID string) (models.Day, error) {
	d, ok := DayNumber(dayID)
	if !ok {
		return models.Day{}, fmt.Errorf("%w: invalid day id %q", ErrNotFound, dayID)
	}
	pos := trip.FindDay(dayID)
	if pos < 0 {
		return models.Day{}, fmt.Errorf("%w: day %s", ErrNotFound, dayID)
	}

	removed := trip.Days[pos]

	days := make([]models.Day, 0, len(trip.Days)-1)
	days = append(days, trip.Days[:pos]...)
	for _, day := range trip.Days[pos+1:] {
		if n, ok := DayNumber(day.ID); ok && n > d {
			day.ID = models.DayID(n - 1)
		}
		days = append(days, day)
	}
	trip.Days = days

	shift := func(n int) int {
		if n > d {
			return n - 1
		}
		return n
	}
	for i := range trip.Locations {
		loc := &trip.Locations[i]
		if loc.Day.IsZero() {
			continue
		}
		if n, ok := loc.Day.Single(); ok && n == d {
			loc.Deleted = true
			logrus.WithFields(logrus.Fields{"location_id": loc.ID, "day_id": dayID}).Debug("Location soft-deleted with its day.")
			continue
		}
		switch {
		case loc.Day.Contains(d):
			rest := loc.Day.Without(d)
			if rest.IsZero() {
				loc.Deleted = true
				continue
			}
			loc.Day = rest.Map(shift)
		default:
			loc.Day = loc.Day.Map(shift)
		}
	}

	trip.TotalDays = len(trip.Days)
	return removed, nil
}

// UpdateDay applies p to dayID. When p carries locations, the day's location
// set is reconciled against them by id.
func UpdateDay(trip *models.Trip, dayID string, p DayPatch) (models.Day, error) {
	i := trip.FindDay(dayID)
	if i < 0 {
		return models.Day{}, fmt.Errorf("%w: day %s", ErrNotFound, dayID)
	}
	ApplyDayFields(&trip.Days[i], p.DayFields)

	if p.Locations != nil {
		reconcileLocations(trip, trip.Days[i], *p.Locations)
	}
	return trip.Days[i], nil
}
