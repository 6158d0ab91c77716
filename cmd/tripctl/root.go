package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trip_tracker/internal/client"
)

// App carries the resolved settings shared by every subcommand.
type App struct {
	v          *viper.Viper
	configFile string
	JSON       bool
	Verbose    bool
}

func (a *App) server() string   { return a.v.GetString(cfgKeyServer) }
func (a *App) cacheDir() string { return a.v.GetString(cfgKeyCacheDir) }

// loadStore fetches the trip into a fresh client store, falling back to the
// local cache when the server is down.
func (a *App) loadStore(ctx context.Context) (*client.API, *client.Store, error) {
	api := client.NewAPI(a.server())
	store := client.NewStore(api, client.NewFileCache(a.cacheDir(), client.DefaultCacheTTL))
	if _, err := store.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load trip from %s: %w", a.server(), err)
	}
	return api, store, nil
}

func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "View and edit a trip itinerary",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Overview of every day
  tripctl show

  # One day with its locations and expenses
  tripctl show D4

  # Log an expense, then fix it
  tripctl expense add D4 --item fuel --amount 42.5
  tripctl expense update D4 0 --item diesel --amount 45

  # Insert a rest day after D4
  tripctl day add --after D4 --route "Rest day"
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.Verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		logrus.SetOutput(cmd.ErrOrStderr())
		return loadConfig(app.v, app.configFile)
	}

	cmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default: ./tripctl.yaml or ~/.config/tripctl/tripctl.yaml)")
	cmd.PersistentFlags().String("server", defaultServer, "trip tracker server URL")
	cmd.PersistentFlags().String("cache-dir", defaultCacheDir(), "directory for the offline copy of the trip")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "output as JSON")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "log requests and reloads")
	_ = app.v.BindPFlag(cfgKeyServer, cmd.PersistentFlags().Lookup("server"))
	_ = app.v.BindPFlag(cfgKeyCacheDir, cmd.PersistentFlags().Lookup("cache-dir"))

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newSummaryCmd(app))
	cmd.AddCommand(newExpenseCmd(app))
	cmd.AddCommand(newDayCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newCacheCmd(app))

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints data as JSON or as the rendered text.
func writeResult(cmd *cobra.Command, app *App, data any, text string) error {
	if app.JSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"data": data})
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// shownError is an error a command already printed.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), errStyle.Render("error: ")+err.Error())
	return shownError{err}
}

// execute runs cmd and prints errors raised before a command ran, such as a
// bad flag or argument count.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	var shown shownError
	if err != nil && !errors.As(err, &shown) {
		fmt.Fprintln(cmd.ErrOrStderr(), errStyle.Render("error: ")+err.Error())
	}
	return err
}
