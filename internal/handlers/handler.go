package handlers

import (
	"time"

	_ "icecream_controller/docs"
	"icecream_controller/internal/logger"
	"icecream_controller/internal/metrics"
	"icecream_controller/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is reported by /info; set with -ldflags at build time.
var Version = "dev"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	metrics  *metrics.Metrics
	log      *logger.Logger
	started  time.Time
}

// NewHandler constructs a new HTTP handler. metrics and log may be nil.
func NewHandler(services *service.Service, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{services: services, metrics: m, log: log, started: time.Now()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/info", h.info)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	// Appliance UI contract: unauthenticated, form-encoded commands.
	h.registerControlRoutes(router)

	router.GET("/ws", h.wsConnect)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerControlRoutes(r *gin.Engine) {
	r.GET("/status", h.readStatus)
	r.GET("/temp-history", h.getHistory)
	r.POST("/set-target", h.setTarget)
	r.POST("/start", h.startCompressor)
	r.POST("/stop", h.stopCompressor)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/logs", h.getLogs)
		api.GET("/settings", h.getSettings)

		// Same commands as the appliance UI, attributed to the operator.
		control := api.Group("/control", h.operatorMiddleware)
		control.POST("/start", h.startCompressor)
		control.POST("/stop", h.stopCompressor)
		control.POST("/set-target", h.setTarget)
	}
}
