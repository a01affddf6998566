package app

import (
	"exam_template_backend/docs"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/middleware"
	"exam_template_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要运维令牌的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerOperatorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// 本地解析：双模版与字母答案
		public.POST("/templates/dual", c.template.GenerateDual)
		public.GET("/templates/example", c.template.Example)
		public.POST("/answers/process", c.template.ProcessAnswers)

		public.GET("/questions/format", c.extract.DefaultFormat)
	}
}

func (a *App) registerOperatorRoutes(rg *gin.RouterGroup, c *controllers) {
	// 大模型提取（消耗 API 额度）
	rg.POST("/questions/extract", c.extract.Extract)
	rg.POST("/questions/extract/stream", c.extract.ExtractStream)

	// 历史记录包含试卷原文与模型输出
	rg.GET("/conversions", c.conversion.List)
	rg.GET("/conversions/:id", c.conversion.Get)
	rg.DELETE("/conversions/:id", c.conversion.Delete)
}
