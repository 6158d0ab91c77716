package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/models"
	"trip_tracker/internal/storage"
)

// UpdateDay edits a day's fields and, when locations are sent, replaces the
// day's location set.
// @Router /api/days/{dayId} [put]
func (tc *TripController) UpdateDay(c *gin.Context) {
	dayID := c.Param("dayId")
	var patch itinerary.DayPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		logrus.WithError(err).Warn("UpdateDay: invalid input payload")
		badRequest(c, "Invalid input: "+err.Error())
		return
	}

	day, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Day, error) {
		return itinerary.UpdateDay(trip, dayID, patch)
	})
	if err != nil {
		tc.fail(c, "UpdateDay", err)
		return
	}
	fields := logrus.Fields{"with_locations": patch.Locations != nil}
	if patch.Locations != nil {
		fields["locations"] = len(*patch.Locations)
	}
	tc.committed(c, "Day updated.", dayID, fields, day)
}

type addDayInput struct {
	InsertAfter string               `json:"insertAfter" binding:"required"`
	Day         *itinerary.DayFields `json:"day" binding:"required"`
}

// AddDay inserts a new day after an existing one and renumbers the rest.
// @Router /api/days [post]
func (tc *TripController) AddDay(c *gin.Context) {
	var input addDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("AddDay: invalid input payload")
		badRequest(c, "Invalid input: "+err.Error())
		return
	}

	day, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Day, error) {
		return itinerary.InsertDayAfter(trip, input.InsertAfter, *input.Day)
	})
	if err != nil {
		tc.fail(c, "AddDay", err)
		return
	}
	tc.committed(c, "Day inserted.", day.ID, logrus.Fields{"insert_after": input.InsertAfter}, day)
}

// DeleteDay removes a day, renumbers the rest and reconciles locations.
// @Router /api/days/{dayId} [delete]
func (tc *TripController) DeleteDay(c *gin.Context) {
	dayID := c.Param("dayId")

	removed, err := storage.Mutate(tc.store, func(trip *models.Trip) (models.Day, error) {
		return itinerary.DeleteDay(trip, dayID)
	})
	if err != nil {
		tc.fail(c, "DeleteDay", err)
		return
	}
	tc.committed(c, "Day deleted.", dayID, logrus.Fields{"route": removed.Route}, removed)
}
