package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trip_tracker/internal/client"
	"trip_tracker/internal/models"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the trip changes on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, mutedStyle.Render("watching "+api.BaseURL()+" (ctrl-c to stop)"))

			err = store.Watch(cmd.Context(), client.WebSocketURL(api.BaseURL()), func(ev models.TripEvent, trip *models.Trip, err error) {
				if app.JSON {
					_ = writeJSON(out, ev)
					return
				}
				at := time.UnixMilli(ev.Timestamp).Format("15:04:05")
				line := fmt.Sprintf("%s %s", mutedStyle.Render(at), ev.Action)
				if ev.DayID != "" {
					line += " " + headerStyle.Render(ev.DayID)
				}
				switch {
				case err != nil:
					line += " " + errStyle.Render("(reload failed: "+err.Error()+")")
				case trip != nil:
					line += mutedStyle.Render(fmt.Sprintf(" [%d days, %s spent]", trip.TotalDays, formatAmount(store.TotalExpense())))
				}
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
