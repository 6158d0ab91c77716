package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/models"
	"trip_tracker/internal/storage"
)

// newExpenseInput is the body of expense create requests. amount may be a
// number or a numeric string.
type newExpenseInput struct {
	Item   string            `json:"item" binding:"required"`
	Amount *models.FlexFloat `json:"amount" binding:"required"`
}

// expenseInput is the body of expense update requests. An empty item is
// allowed here; only a missing one is rejected.
type expenseInput struct {
	Item   *string           `json:"item" binding:"required"`
	Amount *models.FlexFloat `json:"amount" binding:"required"`
}

// checkAmount rejects amounts that are not a non-negative number.
func checkAmount(c *gin.Context, amount *models.FlexFloat) bool {
	if !amount.Valid || amount.Value < 0 {
		badRequest(c, "Amount must be a non-negative number")
		return false
	}
	return true
}

func bindNewExpense(c *gin.Context) (models.Expense, bool) {
	var input newExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("AddExpense: invalid input payload")
		badRequest(c, "Invalid input: "+err.Error())
		return models.Expense{}, false
	}
	if !checkAmount(c, input.Amount) {
		return models.Expense{}, false
	}
	return models.Expense{Item: input.Item, Amount: input.Amount.Value}, true
}

func bindExpense(c *gin.Context) (models.Expense, bool) {
	var input expenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateExpense: invalid input payload")
		badRequest(c, "Invalid input: "+err.Error())
		return models.Expense{}, false
	}
	if !checkAmount(c, input.Amount) {
		return models.Expense{}, false
	}
	return models.Expense{Item: *input.Item, Amount: input.Amount.Value}, true
}

// AddExpense appends an expense to a day.
// @Router /api/expenses/{dayId} [post]
func (tc *TripController) AddExpense(c *gin.Context) {
	dayID := c.Param("dayId")
	expense, ok := bindNewExpense(c)
	if !ok {
		return
	}

	day, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Day, error) {
		return itinerary.AddExpense(trip, dayID, expense)
	})
	if err != nil {
		tc.fail(c, "AddExpense", err)
		return
	}
	tc.committed(c, "Expense added.", dayID, logrus.Fields{
		"item":   expense.Item,
		"amount": expense.Amount,
	}, day)
}

// UpdateExpense overwrites one expense, addressed by index or id.
// @Router /api/expenses/{dayId}/{index} [put]
func (tc *TripController) UpdateExpense(c *gin.Context) {
	dayID := c.Param("dayId")
	ref, err := itinerary.ParseExpenseRef(c.Param("index"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	expense, ok := bindExpense(c)
	if !ok {
		return
	}

	day, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Day, error) {
		return itinerary.UpdateExpense(trip, dayID, ref, expense)
	})
	if err != nil {
		tc.fail(c, "UpdateExpense", err)
		return
	}
	tc.committed(c, "Expense updated.", dayID, logrus.Fields{
		"ref":    ref.String(),
		"item":   expense.Item,
		"amount": expense.Amount,
	}, day)
}

// DeleteExpense removes one expense and returns it.
// @Router /api/expenses/{dayId}/{index} [delete]
func (tc *TripController) DeleteExpense(c *gin.Context) {
	dayID := c.Param("dayId")
	ref, err := itinerary.ParseExpenseRef(c.Param("index"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	removed, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Expense, error) {
		return itinerary.DeleteExpense(trip, dayID, ref)
	})
	if err != nil {
		tc.fail(c, "DeleteExpense", err)
		return
	}
	tc.committed(c, "Expense deleted.", dayID, logrus.Fields{
		"ref":  ref.String(),
		"item": removed.Item,
	}, removed)
}
