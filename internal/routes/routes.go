package routes

import (
	"io"

	"github.com/gin-gonic/gin"

	"trip_tracker/internal/config"
	"trip_tracker/internal/controllers"
	"trip_tracker/internal/middleware"
)

// SetupRouter builds the engine. It does not start listening; the caller owns
// the server.
func SetupRouter(cfg *config.Config, tc *controllers.TripController, hub *controllers.TripHub, accessLog io.Writer) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if accessLog != nil {
		r.Use(middleware.AccessLog(accessLog, wsTripPath))
	}

	TripRoutes(r, tc)
	WebSocketRoutes(r, hub)
	StaticRoutes(r, cfg.ClientDir)

	return r
}
