package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"ev-chart-station/internal/api/docs"
	"ev-chart-station/internal/logger"
	"ev-chart-station/internal/metrics"
	"ev-chart-station/internal/session"
)

// BasePath 业务接口前缀
const BasePath = "/api/v1"

// NewRouter 注册全部路由
//
//	GET  /healthz
//	GET  /metrics
//	GET  /swagger/*any
//	POST /api/v1/stations/validate
//	POST /api/v1/stations
//	GET  /api/v1/stations
//	GET  /api/v1/stations/:id
//	PUT  /api/v1/stations/:id
func NewRouter(h *Handler, codec *session.Codec, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	metrics.Init()
	docs.SwaggerInfo.BasePath = BasePath

	r := gin.New()
	r.Use(logger.GinLogger(log), logger.GinRecovery(log), metrics.GinMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group(BasePath, session.Middleware(codec))
	{
		stations := v1.Group("/stations")
		stations.POST("/validate", h.Validate)
		stations.POST("", h.Create)
		stations.GET("", h.List)
		stations.GET("/:id", h.Get)
		stations.PUT("/:id", h.Update)
	}
	return r
}
