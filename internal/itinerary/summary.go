package itinerary

import "trip_tracker/internal/models"

// DayTotal is the expense sum of a single day.
type DayTotal struct {
	DayID string  `json:"day_id"`
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Summary aggregates the document for the overview panels.
type Summary struct {
	Title        string           `json:"title"`
	TotalDays    int              `json:"total_days"`
	TotalExpense float64          `json:"total_expense"`
	PerDay       []DayTotal       `json:"per_day"`
	DaysByPhase  map[int][]string `json:"days_by_phase"`
}

// TotalExpense sums every expense of every day.
func TotalExpense(trip *models.Trip) float64 {
	var sum float64
	for _, d := range trip.Days {
		sum += d.ExpenseTotal()
	}
	return sum
}

// DaysByPhase groups day ids under every declared phase, keeping day order.
// Days pointing at an undeclared phase are left out.
func DaysByPhase(trip *models.Trip) map[int][]string {
	groups := make(map[int][]string, len(trip.Phases))
	for _, p := range trip.Phases {
		groups[p.ID] = []string{}
	}
	for _, d := range trip.Days {
		if ids, ok := groups[d.Phase]; ok {
			groups[d.Phase] = append(ids, d.ID)
		}
	}
	return groups
}

// Summarize builds the summary view of trip.
func Summarize(trip *models.Trip) Summary {
	s := Summary{
		Title:        trip.Title,
		TotalDays:    trip.TotalDays,
		TotalExpense: TotalExpense(trip),
		PerDay:       make([]DayTotal, 0, len(trip.Days)),
		DaysByPhase:  DaysByPhase(trip),
	}
	for _, d := range trip.Days {
		s.PerDay = append(s.PerDay, DayTotal{DayID: d.ID, Date: d.Date, Total: d.ExpenseTotal()})
	}
	return s
}
