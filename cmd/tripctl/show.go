package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"trip_tracker/internal/client"
	"trip_tracker/internal/models"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [dayId]",
		Short: "Show the trip, or one day in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			trip := store.Data()

			if len(args) == 0 {
				return writeResult(cmd, app, trip, renderTrip(trip, store))
			}
			day, ok := store.Day(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("day %s not found", args[0]))
			}
			locs := store.LocationsForDay(day.ID)
			if app.JSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"data": map[string]any{"day": day, "locations": locs}})
			}
			return writeResult(cmd, app, nil, renderDay(trip, day, locs))
		},
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show expense totals and days per phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			total := store.TotalExpense()
			byPhase := store.DaysByPhase()
			if app.JSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"data": map[string]any{
					"total_expense": total,
					"days_by_phase": byPhase,
				}})
			}
			return writeResult(cmd, app, nil, renderSummary(store.Data(), total, byPhase))
		},
	}
}

func phaseLabel(trip *models.Trip, id int) string {
	if p, ok := trip.Phase(id); ok {
		return phaseChip(p.Name, p.Color)
	}
	return mutedStyle.Render(fmt.Sprintf("phase %d", id))
}

func renderTrip(trip *models.Trip, store *client.Store) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(trip.Title) + "\n")
	fmt.Fprintf(&b, "%s  %d days  %s\n", mutedStyle.Render(trip.StartDate), trip.TotalDays, mutedStyle.Render(trip.TotalDistance))
	if !store.Authoritative() {
		b.WriteString(warnStyle.Render("offline: showing cached copy from "+store.LoadedAt().Format("2006-01-02 15:04")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(pad("DAY", 6)+pad("DATE", 8)+pad("PHASE", 14)+pad("ROUTE", 36)+"SPENT") + "\n")
	for _, d := range trip.Days {
		route := d.Route
		if len([]rune(route)) > 34 {
			route = string([]rune(route)[:33]) + "…"
		}
		b.WriteString(pad(d.ID, 6) + pad(d.Date, 8) + pad(phaseLabel(trip, d.Phase), 14) + pad(textStyle.Render(route), 36) + formatAmount(d.ExpenseTotal()) + "\n")
	}
	fmt.Fprintf(&b, "\n%s %s\n", headerStyle.Render("Total spent:"), formatAmount(store.TotalExpense()))
	return b.String()
}

func renderDay(trip *models.Trip, day models.Day, locs []models.Location) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(day.ID+"  "+day.Route) + "\n")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n", day.Date, phaseLabel(trip, day.Phase), mutedStyle.Render(day.Distance), mutedStyle.Render(day.Elevation))
	if day.Stay != "" {
		fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("Stay:"), day.Stay)
	}
	if len(day.Spots) > 0 {
		fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("Spots:"), strings.Join(day.Spots, ", "))
	}

	b.WriteString("\n" + headerStyle.Render("Locations") + "\n")
	if len(locs) == 0 {
		b.WriteString(mutedStyle.Render("  none") + "\n")
	}
	for _, l := range locs {
		marker := " "
		if l.Major {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %s %s\n", marker, pad(l.Name, 24), mutedStyle.Render(fmt.Sprintf("%.4f, %.4f", l.Lat, l.Lng)))
	}

	b.WriteString("\n" + headerStyle.Render("Expenses") + "\n")
	if len(day.Expenses) == 0 {
		b.WriteString(mutedStyle.Render("  none") + "\n")
	}
	for i, e := range day.Expenses {
		fmt.Fprintf(&b, "  %d  %s %s\n", i, pad(e.Item, 24), formatAmount(e.Amount))
	}
	fmt.Fprintf(&b, "  %s %s\n", pad("", 27), headerStyle.Render(formatAmount(day.ExpenseTotal())))
	return b.String()
}

func renderSummary(trip *models.Trip, total float64, byPhase map[int][]string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(trip.Title) + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", headerStyle.Render("Total spent:"), formatAmount(total))

	ids := make([]int, 0, len(byPhase))
	for id := range byPhase {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		days := byPhase[id]
		list := mutedStyle.Render("no days")
		if len(days) > 0 {
			list = strings.Join(days, " ")
		}
		fmt.Fprintf(&b, "%s %s\n", pad(phaseLabel(trip, id), 16), list)
	}
	return b.String()
}
