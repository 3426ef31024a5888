package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nesttask/backend/config"
	"nesttask/backend/internal/api/handler"
	"nesttask/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课表模块
		routines := v1.Group("/routines")
		{
			routines.GET("", h.Schedule.ListRoutines)
			routines.GET("/default", h.Schedule.GetDefaultRoutine)
			routines.GET("/:id/export.ics", h.Export.ExportRoutineICS)
		}
		v1.GET("/schedule", h.Schedule.GetDaySchedule)

		// 同步模块
		v1.POST("/sync", h.Sync.Refresh)
		v1.GET("/sync/state", h.Sync.GetState)
		v1.PUT("/connectivity", h.Sync.UpdateConnectivity)
		v1.DELETE("/cache/:kind", h.Sync.ClearCache)
	}

	return r
}
