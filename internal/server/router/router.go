package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/server/handlers"
	"github.com/pagarwal884/Aapni-Dairy/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(users *handlers.UserHandler, customers *handlers.CustomerHandler, entries *handlers.EntryHandler, resolver middleware.TenantResolver, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	auth := middleware.Auth(resolver, logger)

	user := r.Group("/api/user")
	{
		user.POST("/register", users.Register)
		user.POST("/login", users.Login)
		user.GET("/profile", auth, users.Profile)
		user.PUT("/update-ab", auth, users.UpdateCoefficients)
		user.GET("/ab", auth, users.Coefficients)
	}

	customer := r.Group("/api/customer", auth)
	{
		customer.POST("/register", customers.Register)
		customer.GET("/list", customers.List)
		customer.PUT("/update/:_id", customers.Update)
		customer.DELETE("/remove/:_id", customers.Delete)
	}

	entry := r.Group("/api/entry", auth)
	{
		entry.POST("/milk-entry/:customerId", entries.Create)
		entry.PUT("/update-entry/:entryId", entries.Update)
		entry.GET("/milk-entries/customer/:customer_c_id/all", entries.ListByCustomer)
		entry.GET("/customer/:customer_c_id/by-date", entries.ListByCustomerAndDate)
		entry.GET("/all", entries.ListAll)
		entry.GET("/summary/total", entries.TotalSummary)
		entry.GET("/entry/summary/lifetime", entries.LifetimeSummary)
		entry.DELETE("/:id", entries.Delete)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
