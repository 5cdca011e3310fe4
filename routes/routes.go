package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zaphod-black/BookingSearchMCP/handlers"
)

// RegisterRoutes wires the tool and health endpoints onto the router.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, hh *handlers.HealthHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	tools := r.Group("/api/tools")
	{
		tools.POST("/search-availability", bh.SearchAvailability)
		tools.POST("/validate-booking", bh.ValidateBooking)
		tools.POST("/prepare-handoff", bh.PrepareHandoff)
	}

	r.GET("/api/health", hh.Health)
}
