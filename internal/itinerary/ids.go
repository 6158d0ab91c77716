package itinerary

import (
	"github.com/google/uuid"

	"trip_tracker/internal/models"
)

const (
	locationIDPrefix = "loc_"
	expenseIDPrefix  = "exp_"
)

// NewLocationID returns a fresh id for a location record.
func NewLocationID() string {
	return locationIDPrefix + uuid.NewString()
}

// NewExpenseID returns a fresh id for an expense entry.
func NewExpenseID() string {
	return expenseIDPrefix + uuid.NewString()
}

// BackfillIDs assigns ids to locations and expenses that lack one and reports
// whether anything changed. Existing ids are never touched.
func BackfillIDs(trip *models.Trip) bool {
	changed := false
	for i := range trip.Locations {
		if trip.Locations[i].ID == "" {
			trip.Locations[i].ID = NewLocationID()
			changed = true
		}
	}
	for d := range trip.Days {
		for e := range trip.Days[d].Expenses {
			if trip.Days[d].Expenses[e].ID == "" {
				trip.Days[d].Expenses[e].ID = NewExpenseID()
				changed = true
			}
		}
	}
	return changed
}
