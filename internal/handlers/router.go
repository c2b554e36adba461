package handlers

import (
	"time"

	"job_order/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route of the service.
func NewRouter(allowedOrigins []string, log logger.Logger, api *APIHandler, orders *OrderHandler, entry *EntryHandler) *gin.Engine {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader, entrySessionHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", api.Health)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/orders", orders.GetOrders)
		apiGroup.POST("/orders", orders.CreateOrder)
		apiGroup.PUT("/orders", orders.UpdateOrder)
		apiGroup.POST("/orders/:orderNo/status", orders.TransitionStatus)

		apiGroup.GET("/products", api.GetProducts)
		apiGroup.POST("/products", api.CreateProduct)
		apiGroup.GET("/customers", api.GetCustomers)
		apiGroup.POST("/customers", api.CreateCustomer)
		apiGroup.GET("/measurements", api.GetMeasurements)

		apiGroup.POST("/entry/field", entry.ValidateField)
		apiGroup.POST("/entry/required-weight", entry.RequiredWeight)
		apiGroup.POST("/entry/submit", entry.Submit)
		apiGroup.GET("/entry/orders/:orderNo", entry.GetForm)
	}

	return router
}
