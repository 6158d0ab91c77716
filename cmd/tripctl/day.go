package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"trip_tracker/internal/itinerary"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Insert, edit or remove days",
	}
	cmd.AddCommand(newDayAddCmd(app))
	cmd.AddCommand(newDayUpdateCmd(app))
	cmd.AddCommand(newDayDeleteCmd(app))
	return cmd
}

// dayFlags registers the editable day fields on fs.
type dayFlags struct {
	date, route, distance, elevation, stay string
	phase                                  int
	spots                                  []string
}

func (f *dayFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "display date, e.g. 07/14")
	fs.StringVar(&f.route, "route", "", "route description")
	fs.StringVar(&f.distance, "distance", "", "distance, e.g. 180km")
	fs.StringVar(&f.elevation, "elevation", "", "elevation gain, e.g. 2400m")
	fs.StringVar(&f.stay, "stay", "", "where the night is spent")
	fs.IntVar(&f.phase, "phase", 0, "phase id")
	fs.StringSliceVar(&f.spots, "spot", nil, "points of interest (repeatable; replaces the list)")
}

// fields returns only the flags the user actually set.
func (f *dayFlags) fields(fs *pflag.FlagSet) itinerary.DayFields {
	var out itinerary.DayFields
	set := func(name string) bool { return fs.Changed(name) }
	if set("date") {
		out.Date = &f.date
	}
	if set("route") {
		out.Route = &f.route
	}
	if set("distance") {
		out.Distance = &f.distance
	}
	if set("elevation") {
		out.Elevation = &f.elevation
	}
	if set("stay") {
		out.Stay = &f.stay
	}
	if set("phase") {
		out.Phase = &f.phase
	}
	if set("spot") {
		spots := append([]string{}, f.spots...)
		out.Spots = &spots
	}
	return out
}

func newDayAddCmd(app *App) *cobra.Command {
	var after string
	var flags dayFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert a day after an existing one; later days are renumbered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			day, err := store.AddDay(cmd.Context(), after, flags.fields(cmd.Flags()))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, day, fmt.Sprintf("Inserted %s after %s", day.ID, after))
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "day id the new day follows (required)")
	_ = cmd.MarkFlagRequired("after")
	flags.register(cmd.Flags())
	return cmd
}

func newDayUpdateCmd(app *App) *cobra.Command {
	var flags dayFlags

	cmd := &cobra.Command{
		Use:   "update <dayId>",
		Short: "Change a day's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := flags.fields(cmd.Flags())
			if fields == (itinerary.DayFields{}) {
				return writeErr(cmd, fmt.Errorf("nothing to update; pass at least one field flag"))
			}
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			day, err := store.UpdateDay(cmd.Context(), args[0], itinerary.DayPatch{DayFields: fields})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, day, fmt.Sprintf("Updated %s", day.ID))
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newDayDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dayId>",
		Short: "Remove a day; later days are renumbered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.loadStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := store.DeleteDay(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, removed, fmt.Sprintf("Removed %s (%s)", args[0], removed.Route))
		},
	}
}
