package routes

import (
	"github.com/gin-gonic/gin"

	"trip_tracker/internal/controllers"
)

const wsTripPath = "/ws/trip"

func WebSocketRoutes(r *gin.Engine, hub *controllers.TripHub) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/trip", hub.HandleTripWebSocket)
	}
}
