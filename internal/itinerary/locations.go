package itinerary

import (
	"sort"

	"github.com/sirupsen/logrus"

	"trip_tracker/internal/models"
)

// LocationInput is one location as submitted with a day edit. Coordinates
// and order may arrive as numbers or strings.
type LocationInput struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Lat   models.FlexFloat `json:"lat"`
	Lng   models.FlexFloat `json:"lng"`
	Alt   string           `json:"alt"`
	Desc  string           `json:"desc"`
	Major bool             `json:"major"`
	Stay  string           `json:"stay"`
	Order models.FlexInt   `json:"order"`
}

func (in LocationInput) empty() bool {
	return in.Name == "" && in.Lat.Value == 0 && in.Lng.Value == 0
}

func (in LocationInput) order() *int {
	if in.Order.Value == nil {
		return nil
	}
	o := *in.Order.Value
	return &o
}

// reconcileLocations makes the live locations of day match incoming by id:
// missing ones are removed, known ones merged, unknown ones added.
func reconcileLocations(trip *models.Trip, day models.Day, incoming []LocationInput) {
	keep := make(map[string]bool, len(incoming))
	for _, in := range incoming {
		if in.ID != "" {
			keep[in.ID] = true
		}
	}

	locs := make([]models.Location, 0, len(trip.Locations))
	removed := 0
	for _, loc := range trip.Locations {
		if loc.Day.String() == day.ID && !loc.Deleted && !keep[loc.ID] {
			removed++
			continue
		}
		locs = append(locs, loc)
	}

	added, merged := 0, 0
	for _, in := range incoming {
		if in.ID == "" || in.empty() {
			continue
		}
		idx := -1
		for i := range locs {
			if locs[i].ID == in.ID && locs[i].Day.String() == day.ID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			loc := &locs[idx]
			loc.Name = in.Name
			loc.Lat = in.Lat.Value
			loc.Lng = in.Lng.Value
			loc.Alt = in.Alt
			loc.Desc = in.Desc
			loc.Major = in.Major
			loc.Stay = in.Stay
			loc.SetOrder(in.order())
			merged++
			continue
		}
		loc := models.Location{
			ID:    in.ID,
			Name:  in.Name,
			Lat:   in.Lat.Value,
			Lng:   in.Lng.Value,
			Day:   models.ParseDayRef(day.ID),
			Phase: day.Phase,
			Alt:   in.Alt,
			Desc:  in.Desc,
			Major: in.Major,
			Stay:  in.Stay,
		}
		loc.SetOrder(in.order())
		locs = append(locs, loc)
		added++
	}
	trip.Locations = locs

	logrus.WithFields(logrus.Fields{
		"day_id":  day.ID,
		"removed": removed,
		"merged":  merged,
		"added":   added,
	}).Debug("Reconciled day locations.")
}

// LocationsForDay returns the live locations whose day field is exactly dayID,
// sorted by order with unordered ones last.
func LocationsForDay(trip *models.Trip, dayID string) []models.Location {
	var out []models.Location
	for _, loc := range trip.Locations {
		if !loc.Deleted && loc.Day.String() == dayID {
			out = append(out, loc)
		}
	}
	SortByOrder(out)
	return out
}

// SortByOrder stably sorts locations by Order; nil orders go last.
func SortByOrder(locs []models.Location) {
	sort.SliceStable(locs, func(i, j int) bool {
		a, b := locs[i].Order, locs[j].Order
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
