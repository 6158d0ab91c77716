package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trip_tracker/internal/client"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline copy of the trip",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the offline copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := client.NewFileCache(app.cacheDir(), client.DefaultCacheTTL)
			if err := cache.Clear(); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, app, map[string]string{"cleared": cache.Path()},
				mutedStyle.Render(fmt.Sprintf("removed %s", cache.Path())))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where the offline copy is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := client.NewFileCache(app.cacheDir(), client.DefaultCacheTTL)
			return writeResult(cmd, app, map[string]string{"path": cache.Path()}, cache.Path())
		},
	})

	return cmd
}
