package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"trip_tracker/internal/config"
	"trip_tracker/internal/controllers"
	"trip_tracker/internal/logger"
	"trip_tracker/internal/middleware"
	"trip_tracker/internal/routes"
	"trip_tracker/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logOut := logger.Setup(cfg.LogFile, cfg.LogLevel)

	if _, err := os.Stat(cfg.DataFile); err != nil {
		logrus.WithError(err).WithField("data_file", cfg.DataFile).Warn("Trip data file not readable; API calls will fail until it exists.")
	}

	store := storage.NewFileStore(cfg.DataFile)
	hub := controllers.NewTripHub()
	defer hub.Stop()

	tc := controllers.NewTripController(store, hub, cfg.StrictStatus)
	r := routes.SetupRouter(cfg, tc, hub, logOut)

	// Wrap with CORS
	handler := middleware.EnableCORS(r, cfg.CORSOrigins)

	logrus.WithFields(logrus.Fields{
		"addr":          cfg.Addr(),
		"data_file":     cfg.DataFile,
		"client_dir":    cfg.ClientDir,
		"strict_status": cfg.StrictStatus,
	}).Info("Trip tracker server running.")
	for _, ep := range []string{
		"GET    /api/trip-data",
		"GET    /api/summary",
		"GET    /api/map/locations.geojson",
		"POST   /api/expenses/:dayId",
		"PUT    /api/expenses/:dayId/:index",
		"DELETE /api/expenses/:dayId/:index",
		"POST   /api/days",
		"PUT    /api/days/:dayId",
		"DELETE /api/days/:dayId",
		"GET    /ws/trip",
	} {
		logrus.Debug("endpoint " + ep)
	}

	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		logrus.WithError(err).Fatal("Server stopped.")
	}
}
