package app

import (
	"context"
	"edumate_backend/internal/config"
	"edumate_backend/internal/controller"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/service"
	"edumate_backend/pkg/database"
	"edumate_backend/pkg/logger"
	"edumate_backend/pkg/monitoring"
	"edumate_backend/pkg/security"
	"edumate_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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

type repositories struct {
	user      *repository.UserRepository
	attempts  *repository.QuizAttemptRepository
	studyTime *repository.StudyTimeRepository
	goal      *repository.GoalRepository
	knowledge *repository.KnowledgeRepository
}

type services struct {
	ai        *service.AIService
	embedding *service.EmbeddingService
	knowledge *service.KnowledgeService
	auth      *service.AuthService
	user      *service.UserService
	tutor     *service.TutorService
	quiz      *service.QuizService
	studyTime *service.StudyTimeService
	goal      *service.GoalService
	stats     *service.StatsService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	tutor     *controller.TutorController
	quiz      *controller.QuizController
	studyTime *controller.StudyTimeController
	goal      *controller.GoalController
	stats     *controller.StatsController
	knowledge *controller.KnowledgeController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，通知所有订阅方
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		attempts:  repository.NewQuizAttemptRepository(db),
		studyTime: repository.NewStudyTimeRepository(db),
		goal:      repository.NewGoalRepository(db),
		knowledge: repository.NewKnowledgeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.embedding = service.NewEmbeddingService(cfg.Embedding)
	s.knowledge = service.NewKnowledgeService(s.embedding, repos.knowledge)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.tutor = service.NewTutorService(s.ai, s.knowledge, cfg.RAG, rdb)
	s.quiz = service.NewQuizService(s.ai, s.knowledge, repos.attempts, cfg.RAG)
	s.studyTime = service.NewStudyTimeService(repos.studyTime)
	s.goal = service.NewGoalService(repos.goal, repos.studyTime, repos.attempts, s.user)
	s.stats = service.NewStatsService(repos.attempts, repos.studyTime, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		tutor:     controller.NewTutorController(s.tutor),
		quiz:      controller.NewQuizController(s.quiz),
		studyTime: controller.NewStudyTimeController(s.studyTime),
		goal:      controller.NewGoalController(s.goal),
		stats:     controller.NewStatsController(s.stats, s.user),
		knowledge: controller.NewKnowledgeController(s.knowledge),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// debug 模式每次启动自动迁移；release 模式需显式 -migrate
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug" || cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("edumate-backend", cfg.Server.Mode, cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// 检索参数支持热更新，改配置文件即可收缩或放开 RAG 档位
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.tutor.RAG = newCfg.RAG
		services.quiz.RAG = newCfg.RAG
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
