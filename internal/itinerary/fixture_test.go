package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"trip_tracker/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// newTrip builds a dense n-day trip with one single-day location per day.
func newTrip(t *testing.T, n int) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Title:     "Test loop",
		TotalDays: n,
		Phases: []models.Phase{
			{ID: 1, Name: "East", Color: "#E74C3C"},
			{ID: 2, Name: "West", Color: "#3498DB"},
		},
	}
	for i := 1; i <= n; i++ {
		phase := 1
		if i > n/2 {
			phase = 2
		}
		trip.Days = append(trip.Days, models.Day{
			ID:       models.DayID(i),
			Date:     fmt.Sprintf("2026-03-%02d", i),
			Route:    fmt.Sprintf("Town %d", i),
			Phase:    phase,
			Spots:    []string{},
			Expenses: []models.Expense{},
		})
		trip.Locations = append(trip.Locations, models.Location{
			ID:    fmt.Sprintf("loc_%d", i),
			Name:  fmt.Sprintf("Stop %d", i),
			Day:   models.ParseDayRef(models.DayID(i)),
			Phase: phase,
		})
	}
	return trip
}

func dayIDs(trip *models.Trip) []string {
	ids := make([]string, len(trip.Days))
	for i, d := range trip.Days {
		ids[i] = d.ID
	}
	return ids
}

func findLocation(t *testing.T, trip *models.Trip, id string) models.Location {
	t.Helper()
	for _, loc := range trip.Locations {
		if loc.ID == id {
			return loc
		}
	}
	require.FailNowf(t, "location missing", "no location %s", id)
	return models.Location{}
}

// requireDense checks ids are exactly D1..Dn and totalDays matches.
func requireDense(t *testing.T, trip *models.Trip) {
	t.Helper()
	require.Equal(t, len(trip.Days), trip.TotalDays)
	for i, d := range trip.Days {
		require.Equal(t, models.DayID(i+1), d.ID, "day at position %d", i)
	}
}

// requireRefsValid checks every live location only references existing days.
func requireRefsValid(t *testing.T, trip *models.Trip) {
	t.Helper()
	for _, loc := range trip.Locations {
		if loc.Deleted {
			continue
		}
		for _, n := range loc.Day.Days() {
			require.True(t, n >= 1 && n <= len(trip.Days), "location %s references D%d with %d days", loc.ID, n, len(trip.Days))
		}
	}
}
