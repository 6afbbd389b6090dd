package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleet/internal/handler"
	"fleet/internal/middleware"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	RequestHandler  *handler.RequestHandler
	TripHandler     *handler.TripHandler
	VehicleHandler  *handler.VehicleHandler
	EmployeeHandler *handler.EmployeeHandler
	AdminHandler    *handler.AdminHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter builds the gin engine and registers all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	if deps.RedisClient != nil {
		v1.Use(middleware.Idempotency(deps.RedisClient))
	}

	requests := v1.Group("/requests")
	{
		requests.POST("", deps.RequestHandler.Create)
		requests.GET("", deps.RequestHandler.List)
		requests.GET("/:id", deps.RequestHandler.Get)
		requests.POST("/:id/cancel", deps.RequestHandler.Cancel)
		requests.POST("/:id/decide", deps.RequestHandler.Decide)
		requests.POST("/:id/advance", deps.TripHandler.Advance)
	}

	vehicles := v1.Group("/vehicles")
	{
		vehicles.POST("", deps.VehicleHandler.Register)
		vehicles.GET("", deps.VehicleHandler.GetAll)
		vehicles.GET("/:id", deps.VehicleHandler.Get)
		vehicles.PUT("/:id/status", deps.VehicleHandler.SetStatus)
	}

	employees := v1.Group("/employees")
	{
		employees.POST("", deps.EmployeeHandler.Register)
		employees.GET("", deps.EmployeeHandler.GetAll)
	}

	v1.GET("/departments", deps.EmployeeHandler.GetDepartments)

	admin := v1.Group("/admin")
	{
		admin.GET("/tables", deps.AdminHandler.ListTables)
		admin.GET("/tables/:name", deps.AdminHandler.BrowseTable)
	}

	return router
}
