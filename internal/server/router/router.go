package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(herdHandler *handlers.HerdHandler, ledgerHandler *handlers.LedgerHandler, reportsHandler *handlers.ReportsHandler, advisorHandler *handlers.AdvisorHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/animals", herdHandler.AddAnimal)
	r.POST("/animals/:id/sale", herdHandler.RegisterSale)
	r.POST("/animals/:id/retire", herdHandler.RetireAnimal)
	r.DELETE("/animals/:id", herdHandler.DeleteAnimal)
	r.GET("/animals/:id/costs", herdHandler.AnimalCosts)
	r.GET("/animals/:id/profit", reportsHandler.SaleProfit)

	r.POST("/batches", herdHandler.CreateBatch)
	r.DELETE("/batches/:id", herdHandler.DeleteBatch)
	r.POST("/batches/:id/transfer", herdHandler.TransferAnimals)
	r.GET("/batches/:id/investment", herdHandler.BatchInvestment)

	r.POST("/costs", ledgerHandler.AddCost)
	r.PUT("/costs/:id", ledgerHandler.EditCost)
	r.DELETE("/costs/:id", ledgerHandler.DeleteCost)

	r.POST("/inventory", ledgerHandler.AddInventoryItem)
	r.PUT("/inventory/:id", ledgerHandler.EditInventoryItem)
	r.DELETE("/inventory/:id", ledgerHandler.DeleteInventoryItem)
	r.POST("/inventory/consume", ledgerHandler.ConsumeFeed)

	r.GET("/dashboard", reportsHandler.Dashboard)
	r.GET("/reports/period", reportsHandler.PeriodReport)
	r.GET("/projections/feed", reportsHandler.FeedProjection)
	r.GET("/document", reportsHandler.Document)

	r.GET("/advisor/insights", advisorHandler.Insights)
	r.GET("/advisor/market-price", advisorHandler.MarketPrice)
	r.POST("/advisor/scenarios", advisorHandler.Scenarios)

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
