// internal/models/trip.go
package models

// Trip is the whole persisted itinerary document.
type Trip struct {
	Title         string     `json:"title"`
	TotalDays     int        `json:"totalDays"`
	TotalDistance string     `json:"totalDistance"`
	StartDate     string     `json:"startDate"`
	Phases        []Phase    `json:"phases"`
	Days          []Day      `json:"days"`
	Locations     []Location `json:"locations"`

	// mapConfig, routePoints, highlightKeywords and anything else the views use
	Extra Extra `json:"-"`
}

// Phase groups consecutive days for display; ids are stable.
type Phase struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Days  string `json:"days"`

	Extra Extra `json:"-"`
}

type tripAlias Trip
type phaseAlias Phase

func (t Trip) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(tripAlias(t), t.Extra)
}

func (t *Trip) UnmarshalJSON(data []byte) error {
	var a tripAlias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*t = Trip(a)
	t.Extra = extra
	return nil
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(phaseAlias(p), p.Extra)
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var a phaseAlias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*p = Phase(a)
	p.Extra = extra
	return nil
}

// FindDay returns the index of the day with the given id, or -1.
func (t *Trip) FindDay(id string) int {
	for i := range t.Days {
		if t.Days[i].ID == id {
			return i
		}
	}
	return -1
}

// Phase returns the phase with the given id.
func (t *Trip) Phase(id int) (Phase, bool) {
	for _, p := range t.Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// Clone returns a deep copy that shares nothing mutable with t.
func (t *Trip) Clone() *Trip {
	if t == nil {
		return nil
	}
	out := *t
	out.Extra = t.Extra.clone()
	if t.Phases != nil {
		out.Phases = make([]Phase, len(t.Phases))
		for i, p := range t.Phases {
			p.Extra = p.Extra.clone()
			out.Phases[i] = p
		}
	}
	if t.Days != nil {
		out.Days = make([]Day, len(t.Days))
		for i := range t.Days {
			out.Days[i] = t.Days[i].Clone()
		}
	}
	if t.Locations != nil {
		out.Locations = make([]Location, len(t.Locations))
		for i := range t.Locations {
			out.Locations[i] = t.Locations[i].Clone()
		}
	}
	return &out
}
