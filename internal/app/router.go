package app

import (
	"edumate_backend/docs"
	"edumate_backend/internal/config"
	"edumate_backend/internal/middleware"
	"edumate_backend/internal/model"

	"edumate_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 家长-学生关系
		authGroup.POST("/auth/link", middleware.RoleMiddleware(model.Parent), c.user.LinkStudent)
		authGroup.GET("/auth/students", middleware.RoleMiddleware(model.Parent), c.user.LinkedStudents)
		authGroup.PUT("/students/:studentId/grade", middleware.RoleMiddleware(model.Parent), c.user.UpdateStudentGrade)

		// AI 辅导
		authGroup.POST("/ask", c.tutor.Ask)
		authGroup.POST("/ask/stream", c.tutor.AskStream)

		// 测验
		authGroup.POST("/quiz/generate", c.quiz.Generate)
		authGroup.POST("/quiz/grade", c.quiz.Grade)
		authGroup.POST("/quiz/track", c.quiz.Track)

		// 学习时长
		authGroup.POST("/time/track", c.studyTime.Track)

		// 每日目标
		authGroup.GET("/goals", c.goal.GetToday)
		authGroup.POST("/goals", c.goal.SetToday)
		authGroup.POST("/goals/students/:studentId", middleware.RoleMiddleware(model.Parent), c.goal.ParentSet)
		authGroup.GET("/goals/month/:year/:month", c.goal.MonthCompletion)

		// 统计面板
		authGroup.GET("/stats/student/:studentId", c.stats.StudentStats)

		// 知识库
		authGroup.GET("/knowledge/search", c.knowledge.Search)
		authGroup.POST("/admin/knowledge", c.knowledge.Ingest)
	}
}
