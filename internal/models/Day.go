// internal/models/day.go
package models

// Day is one calendar day of the itinerary. Its id ("D" + position) is
// rewritten whenever a day is inserted or removed before it.
type Day struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Route     string    `json:"route"`
	Distance  string    `json:"distance"`
	Elevation string    `json:"elevation"`
	Stay      string    `json:"stay"`
	Phase     int       `json:"phase"`
	Spots     []string  `json:"spots"`
	Expenses  []Expense `json:"expenses"`

	Extra Extra `json:"-"`
}

// Expense is a single spending entry on a day. ID is assigned on creation;
// older documents may carry entries without one until they are backfilled.
type Expense struct {
	ID     string  `json:"id,omitempty"`
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

type dayAlias Day

func (d Day) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(dayAlias(d), d.Extra)
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var a dayAlias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*d = Day(a)
	d.Extra = extra
	return nil
}

// ExpenseTotal sums the day's expenses.
func (d Day) ExpenseTotal() float64 {
	var sum float64
	for _, e := range d.Expenses {
		sum += e.Amount
	}
	return sum
}

// Clone returns a deep copy of d.
func (d Day) Clone() Day {
	out := d
	if d.Spots != nil {
		out.Spots = append([]string{}, d.Spots...)
	}
	if d.Expenses != nil {
		out.Expenses = append([]Expense{}, d.Expenses...)
	}
	out.Extra = d.Extra.clone()
	return out
}
