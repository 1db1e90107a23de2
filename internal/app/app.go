package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellmind_backend/internal/config"
	"wellmind_backend/internal/controller"
	"wellmind_backend/internal/repository"
	"wellmind_backend/internal/rules"
	"wellmind_backend/internal/service"
	"wellmind_backend/pkg/configwatcher"
	"wellmind_backend/pkg/database"
	"wellmind_backend/pkg/logger"
	"wellmind_backend/pkg/monitoring"
	"wellmind_backend/pkg/security"
	"wellmind_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

type repositories struct {
	account *repository.AccountRepository
	screen  *repository.ScreeningRepository
	flow    *repository.ScreeningFlowRepository
	session *repository.ScreeningSessionRepository
	answer  *repository.ScreeningAnswerRepository
	tx      *repository.TxManager
}

type services struct {
	auth    *service.AuthService
	catalog *service.ScreeningCatalogService
	session *service.ScreeningSessionService
}

type controllers struct {
	auth      *controller.AuthController
	screening *controller.ScreeningController
	session   *controller.ScreeningSessionController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		account: repository.NewAccountRepository(db),
		screen:  repository.NewScreeningRepository(db),
		flow:    repository.NewScreeningFlowRepository(db),
		session: repository.NewScreeningSessionRepository(db),
		answer:  repository.NewScreeningAnswerRepository(db),
		tx:      repository.NewTxManager(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	evaluator := rules.NewExprEvaluator(cfg.RuleBudget())

	var crisis service.CrisisNotifier = service.LogCrisisNotifier{}
	if rdb != nil {
		crisis = service.NewRedisCrisisNotifier(rdb, cfg.Crisis.Channel)
	}

	return &services{
		auth:    service.NewAuthService(repos.account, cfg),
		catalog: service.NewScreeningCatalogService(repos.screen, repos.flow),
		session: service.NewScreeningSessionService(
			repos.session,
			repos.answer,
			repos.screen,
			repos.flow,
			repos.account,
			service.NewScoringService(evaluator),
			service.NewOrchestrationService(evaluator),
			crisis,
			repos.tx,
		),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		screening: controller.NewScreeningController(s.catalog),
		session:   controller.NewScreeningSessionController(s.session),
		health:    controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	} else {
		logger.Log.Warn("Redis not configured; crisis notifications fall back to the log stream")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("screening-engine", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Configuration reloaded")
		a.Config = newCfg
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
