package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oakvale/server/config"
)

// NewRouter builds the gin engine with middleware and every route mounted
func NewRouter(h *Handler, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(router, h, cfg)
	return router
}

func SetupRoutes(router *gin.Engine, h *Handler, cfg *config.Config) {
	limiter := NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst, h.logger)
	requireAuth := AuthMiddleware(h.auth)

	api := router.Group("/api")
	{
		api.GET("/properties", h.ListProperties)
		api.GET("/properties/map", h.PropertyMap)
		api.GET("/properties/:id", h.GetProperty)
		api.GET("/neighborhoods", h.ListNeighborhoods)
		api.GET("/neighborhoods/map", h.NeighborhoodMap)
		api.GET("/neighborhoods/:name", h.GetNeighborhood)
		api.GET("/price-brackets", h.PriceBrackets)

		api.POST("/mortgage", h.Mortgage)
		api.POST("/mortgage/schedule", h.MortgageSchedule)
		api.POST("/valuation", h.Valuation)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", limiter.Limit(), h.SignUp)
		authGroup.POST("/signin", limiter.Limit(), h.SignIn)
		authGroup.POST("/signout", requireAuth, h.SignOut)
		authGroup.GET("/me", requireAuth, h.Me)
	}

	client := api.Group("", requireAuth)
	{
		client.POST("/properties/:id/bookings", h.CreateBooking)
		client.GET("/bookings", h.ListMyBookings)
		client.POST("/bookings/:id/cancel", h.CancelBooking)
	}

	admin := api.Group("/admin", requireAuth, AdminMiddleware())
	{
		admin.GET("/properties", h.AdminListProperties)
		admin.POST("/properties", h.CreateProperty)
		admin.PUT("/properties/:id", h.UpdateProperty)
		admin.DELETE("/properties/:id", h.DeleteProperty)
		admin.GET("/bookings", h.ListAllBookings)
		admin.PUT("/bookings/:id/status", h.UpdateBookingStatus)
		admin.GET("/stats", h.DashboardStats)
	}
}

// requestLogger logs each request through logrus
func requestLogger(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
			return
		}
		entry.Debug("Request handled")
	}
}
