// Package itinerary holds the edits that can be applied to a trip document.
// Each function mutates the *models.Trip it is given and returns the entity the
// caller asked about; persisting the result is the caller's job.
package itinerary

import (
	"errors"
	"strconv"
	"strings"

	"trip_tracker/internal/models"
)

var (
	// ErrNotFound means the referenced day, expense or location does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange means an expense index is outside the day's expense list.
	ErrIndexOutOfRange = errors.New("expense index out of range")
	// ErrValidation means a request carried missing or malformed fields.
	ErrValidation = errors.New("validation failed")
)

// DayNumber parses the numeric suffix of a day id ("D12" -> 12).
func DayNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "D")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func findDay(trip *models.Trip, dayID string) (*models.Day, bool) {
	i := trip.FindDay(dayID)
	if i < 0 {
		return nil, false
	}
	return &trip.Days[i], true
}
