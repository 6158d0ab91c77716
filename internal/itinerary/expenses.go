package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"trip_tracker/internal/models"
)

// ExpenseRef addresses an expense either by position or by stable id.
type ExpenseRef struct {
	Index int
	ID    string
}

// IndexRef addresses the expense at position i.
func IndexRef(i int) ExpenseRef {
	return ExpenseRef{Index: i}
}

// ParseExpenseRef accepts a decimal index or an expense id ("exp_...").
func ParseExpenseRef(s string) (ExpenseRef, error) {
	if strings.HasPrefix(s, expenseIDPrefix) && len(s) > len(expenseIDPrefix) {
		return ExpenseRef{ID: s}, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return ExpenseRef{}, fmt.Errorf("%w: invalid expense index %q", ErrValidation, s)
	}
	return IndexRef(i), nil
}

func (r ExpenseRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Index)
}

// Resolve turns r into a valid position in day's expense list.
func (r ExpenseRef) Resolve(day *models.Day) (int, error) {
	if r.ID != "" {
		for i, e := range day.Expenses {
			if e.ID == r.ID {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: expense %s on day %s", ErrNotFound, r.ID, day.ID)
	}
	if r.Index < 0 || r.Index >= len(day.Expenses) {
		return 0, fmt.Errorf("%w: %d (day %s has %d)", ErrIndexOutOfRange, r.Index, day.ID, len(day.Expenses))
	}
	return r.Index, nil
}

// AddExpense appends e to the day's expenses and returns the updated day.
func AddExpense(trip *models.Trip, dayID string, e models.Expense) (models.Day, error) {
	day, ok := findDay(trip, dayID)
	if !ok {
		return models.Day{}, fmt.Errorf("%w: day %s", ErrNotFound, dayID)
	}
	if e.ID == "" {
		e.ID = NewExpenseID()
	}
	day.Expenses = append(day.Expenses, models.Expense{ID: e.ID, Item: e.Item, Amount: e.Amount})
	return *day, nil
}

// UpdateExpense overwrites item and amount of the referenced expense in place.
func UpdateExpense(trip *models.Trip, dayID string, ref ExpenseRef, e models.Expense) (models.Day, error) {
	day, ok := findDay(trip, dayID)
	if !ok {
		return models.Day{}, fmt.Errorf("%w: day %s", ErrNotFound, dayID)
	}
	i, err := ref.Resolve(day)
	if err != nil {
		return models.Day{}, err
	}
	day.Expenses[i].Item = e.Item
	day.Expenses[i].Amount = e.Amount
	return *day, nil
}

// DeleteExpense removes exactly one expense and returns it.
func DeleteExpense(trip *models.Trip, dayID string, ref ExpenseRef) (models.Expense, error) {
	day, ok := findDay(trip, dayID)
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: day %s", ErrNotFound, dayID)
	}
	i, err := ref.Resolve(day)
	if err != nil {
		return models.Expense{}, err
	}
	removed := day.Expenses[i]
	day.Expenses = append(day.Expenses[:i:i], day.Expenses[i+1:]...)
	return removed, nil
}
