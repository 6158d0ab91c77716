// internal/models/location.go
package models

import "encoding/json"

// Location is a geocoded point tied to one day or a range of days.
type Location struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Day   DayRef  `json:"day"`
	Phase int     `json:"phase"`
	Alt   string  `json:"alt,omitempty"`
	Desc  string  `json:"desc,omitempty"`
	Major bool    `json:"major"`
	Stay  string  `json:"stay,omitempty"`
	Order *int    `json:"order,omitempty"` // display order within the day, nil sorts last

	Deleted   bool `json:"deleted,omitempty"`   // soft delete when its day was removed
	LabelOnly bool `json:"labelOnly,omitempty"` // no marker, not part of routing

	Extra Extra `json:"-"`

	orderNull bool // write "order": null while Order is nil
}

type locationAlias Location

// SetOrder replaces Order. A nil order is written as an explicit null.
func (l *Location) SetOrder(o *int) {
	l.Order = o
	l.orderNull = o == nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	extra := l.Extra
	if l.Order == nil && l.orderNull {
		extra = l.Extra.clone()
		if extra == nil {
			extra = make(Extra, 1)
		}
		extra["order"] = json.RawMessage("null")
	}
	return encodeWithExtra(locationAlias(l), extra)
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var a locationAlias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	var nulls struct {
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(data, &nulls); err != nil {
		return err
	}
	*l = Location(a)
	l.Extra = extra
	l.orderNull = l.Order == nil && string(nulls.Order) == "null"
	return nil
}

// Clone returns a deep copy of l.
func (l Location) Clone() Location {
	out := l
	out.Day = l.Day.clone()
	if l.Order != nil {
		o := *l.Order
		out.Order = &o
	}
	out.Extra = l.Extra.clone()
	return out
}
