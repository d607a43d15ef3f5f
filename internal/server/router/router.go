package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(records *handlers.RecordsHandler, stats *handlers.StatsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.GET("/arrivals", records.ListArrivals)
	api.POST("/arrivals", records.CreateArrival)
	api.PUT("/arrivals/:id", records.UpdateArrival)
	api.DELETE("/arrivals/:id", records.DeleteArrival)

	api.GET("/mortalities", records.ListMortalities)
	api.POST("/mortalities", records.CreateMortality)
	api.PUT("/mortalities/:id", records.UpdateMortality)
	api.DELETE("/mortalities/:id", records.DeleteMortality)

	api.GET("/feed-medicines", records.ListFeedMedicines)
	api.POST("/feed-medicines", records.CreateFeedMedicine)
	api.PUT("/feed-medicines/:id", records.UpdateFeedMedicine)
	api.DELETE("/feed-medicines/:id", records.DeleteFeedMedicine)

	api.GET("/sales", records.ListSales)
	api.POST("/sales", records.CreateSale)
	api.PUT("/sales/:id", records.UpdateSale)
	api.DELETE("/sales/:id", records.DeleteSale)

	api.GET("/extra-expenses", records.ListExtraExpenses)
	api.POST("/extra-expenses", records.CreateExtraExpense)
	api.PUT("/extra-expenses/:id", records.UpdateExtraExpense)
	api.DELETE("/extra-expenses/:id", records.DeleteExtraExpense)

	api.GET("/stats", stats.GetStats)
	api.GET("/reports/daily", stats.GetDailyReport)

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
