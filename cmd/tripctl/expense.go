package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/models"
)

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Add, change or remove a day's expenses",
	}
	cmd.AddCommand(newExpenseAddCmd(app))
	cmd.AddCommand(newExpenseUpdateCmd(app))
	cmd.AddCommand(newExpenseDeleteCmd(app))
	return cmd
}

// parseAmount accepts a non-negative decimal.
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("amount must be a non-negative number, got %q", s)
	}
	return v, nil
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var item, amount string

	cmd := &cobra.Command{
		Use:   "add <dayId>",
		Short: "Append an expense to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			day, err := store.AddExpense(cmd.Context(), args[0], models.Expense{Item: item, Amount: value})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, day, fmt.Sprintf("Added %s %s to %s (day total %s)",
				item, formatAmount(value), day.ID, formatAmount(day.ExpenseTotal())))
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "what the money was spent on (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent (required)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpenseUpdateCmd(app *App) *cobra.Command {
	var item, amount string

	cmd := &cobra.Command{
		Use:   "update <dayId> <index|expenseId>",
		Short: "Overwrite an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := itinerary.ParseExpenseRef(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			value, err := parseAmount(amount)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			day, err := store.UpdateExpense(cmd.Context(), args[0], ref, models.Expense{Item: item, Amount: value})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, day, fmt.Sprintf("Updated expense %s on %s", ref, day.ID))
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "what the money was spent on (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent (required)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpenseDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dayId> <index|expenseId>",
		Short: "Remove an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := itinerary.ParseExpenseRef(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := store.DeleteExpense(cmd.Context(), args[0], ref)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, removed, fmt.Sprintf("Removed %s %s from %s",
				removed.Item, formatAmount(removed.Amount), args[0]))
		},
	}
}
