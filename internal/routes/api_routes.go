package routes

import (
	"github.com/gin-gonic/gin"

	"trip_tracker/internal/controllers"
)

// TripRoutes mounts the trip API under /api.
func TripRoutes(r *gin.Engine, tc *controllers.TripController) {
	api := r.Group("/api")
	{
		api.GET("/trip-data", tc.GetTripData)
		api.GET("/summary", tc.GetSummary)
		api.GET("/map/locations.geojson", tc.GetLocationsGeoJSON)

		expenses := api.Group("/expenses")
		expenses.POST("/:dayId", tc.AddExpense)
		expenses.PUT("/:dayId/:index", tc.UpdateExpense)
		expenses.DELETE("/:dayId/:index", tc.DeleteExpense)

		days := api.Group("/days")
		days.POST("", tc.AddDay)
		days.PUT("/:dayId", tc.UpdateDay)
		days.DELETE("/:dayId", tc.DeleteDay)
	}
}
