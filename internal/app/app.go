package app

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/controller"
	"exam_template_backend/internal/repository"
	"exam_template_backend/internal/service"
	"exam_template_backend/pkg/configwatcher"
	"exam_template_backend/pkg/database"
	"exam_template_backend/pkg/logger"
	"exam_template_backend/pkg/monitoring"
	"exam_template_backend/pkg/security"
	"exam_template_backend/pkg/tracing"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Services *Services

	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

// Services 供 HTTP 与 Telegram 两种入口共用
type Services struct {
	Storage    *service.StorageService
	Template   *service.TemplateService
	Extract    *service.ExtractService
	Conversion *service.ConversionService
}

type controllers struct {
	template   *controller.TemplateController
	extract    *controller.ExtractController
	conversion *controller.ConversionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

// NewServices 组装服务层
func NewServices(cfg *config.Config, conversions *repository.ConversionRepository, cache *repository.TemplateCache) *Services {
	s := &Services{}

	s.Storage = service.NewStorageService(cfg)
	s.Template = service.NewTemplateService(cfg.Parser, conversions, cache, s.Storage)
	s.Extract = service.NewExtractService(
		conversions,
		cfg.AI.Timeout(),
		service.NewAIService(cfg.AI),
		service.NewGeminiEngine(cfg.Gemini),
	)
	s.Conversion = service.NewConversionService(conversions, s.Storage)

	return s
}

func (a *App) initControllers(s *Services, db *gorm.DB, cache *repository.TemplateCache) *controllers {
	components := map[string]controller.Pinger{
		"database": controller.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if cache.Enabled() {
		components["redis"] = cache
	}

	return &controllers{
		template:   controller.NewTemplateController(s.Template),
		extract:    controller.NewExtractController(s.Extract),
		conversion: controller.NewConversionController(s.Conversion),
		health:     controller.NewHealthController(components),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Bootstrap 初始化日志、数据库与缓存，HTTP 与 Telegram 入口共用
func Bootstrap(cfg *config.Config) (*gorm.DB, *redis.Client, *Services) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认不做迁移，除非显式指定
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级运行
		logger.Log.Warn("Failed to initialize redis, cache disabled", zap.Error(err))
		rdb = nil
	}

	monitoring.Init()

	services := NewServices(cfg, repository.NewConversionRepository(db), repository.NewTemplateCache(rdb))
	return db, rdb, services
}

func NewApp(cfg *config.Config) *App {
	db, rdb, services := Bootstrap(cfg)

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Services: services,
	}

	if cfg.MigrateOnly {
		return app
	}

	controllers := app.initControllers(services, db, repository.NewTemplateCache(rdb))

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(services.Extract.UpdateConfig)
	app.RegisterConfigCallback(func(c *config.Config) {
		services.Template.UpdateConfig(c.Parser)
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 配置热更新
	go func() {
		if err := configwatcher.WatchConfig(ctx, filepath.FromSlash(configFile), a.applyConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
