package app

import (
	"aivra_backend/docs"
	"aivra_backend/internal/config"
	"aivra_backend/internal/middleware"
	"aivra_backend/internal/model"
	"aivra_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.GetAllCourses)
		public.GET("/courses/:id", c.course.GetCourseByID)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		// 用户档案
		authGroup.GET("/users/profile", c.user.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.POST("/users", c.user.CreateProfile)
		authGroup.POST("/users/promote", c.user.PromoteToProfessor)
		authGroup.POST("/users/promote-admin", c.user.PromoteToAdmin)

		// 选课与进度
		authGroup.GET("/enrollments", c.enrollment.GetUserEnrollments)
		authGroup.GET("/enrollments/:courseId", c.enrollment.GetEnrollment)
		authGroup.POST("/enrollments/:courseId/progress", c.enrollment.UpdateProgress)

		// 学习概览
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		// 教授相关接口
		professor := authGroup.Group("/")
		professor.Use(middleware.RoleMiddleware(model.Professor))
		{
			professor.POST("/courses", c.course.CreateCourse)
			professor.PUT("/courses/:id", c.course.UpdateCourse)
			professor.DELETE("/courses/:id", c.course.DeleteCourse)
			professor.POST("/upload", c.content.UploadAttachment)
		}
	}
}
