package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/storage"
)

// TripController serves the trip document and every edit applied to it.
type TripController struct {
	store  *storage.FileStore
	hub    *TripHub
	strict bool
}

// NewTripController wires the handlers to the data file and the notifier.
// With strict set, NotFound and IndexOutOfRange are reported as 404 and 422
// instead of 500.
func NewTripController(store *storage.FileStore, hub *TripHub, strict bool) *TripController {
	return &TripController{store: store, hub: hub, strict: strict}
}

// GetTripData returns the whole document. Locations and expenses without an
// id get one, and that change is saved once.
func (tc *TripController) GetTripData(c *gin.Context) {
	trip, err := tc.store.Snapshot(itinerary.BackfillIDs)
	if err != nil {
		logrus.WithError(err).Error("GetTripData: failed to load trip data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GetSummary returns expense totals and the day grouping per phase.
func (tc *TripController) GetSummary(c *gin.Context) {
	trip, err := tc.store.Load()
	if err != nil {
		logrus.WithError(err).Error("GetSummary: failed to load trip data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, itinerary.Summarize(trip))
}

// fail reports a mutator or storage error. Everything is a 500 unless strict
// status codes are enabled.
func (tc *TripController) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	if tc.strict {
		switch {
		case errors.Is(err, itinerary.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, itinerary.ErrIndexOutOfRange):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, itinerary.ErrValidation):
			status = http.StatusBadRequest
		}
	}
	logrus.WithError(err).WithField("status", status).Warn(op + ": edit rejected")
	c.JSON(status, gin.H{"error": err.Error()})
}

// committed logs a saved edit, notifies open views and sends the result.
func (tc *TripController) committed(c *gin.Context, action, dayID string, fields logrus.Fields, data any) {
	entry := logrus.WithFields(fields).WithField("day_id", dayID)
	if tc.hub != nil {
		entry = entry.WithField("views", tc.hub.ClientCount())
		tc.hub.PublishTripUpdate(action, dayID)
	}
	entry.Info(action)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
