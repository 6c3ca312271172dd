package app

import (
	"gradebook_backend/docs"
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/middleware"
	"gradebook_backend/internal/model"

	"gradebook_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerProfessorRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 课程浏览
	rg.GET("/courses", c.course.List)
	rg.GET("/courses/mine", c.course.ListMine)
	rg.GET("/courses/:id", c.course.GetDetail)
	rg.GET("/courses/:id/components", c.course.ListComponents)
	rg.GET("/courses/:id/bands", c.course.ListBands)
	rg.GET("/courses/:id/materials", c.material.ListForCourse)
	rg.GET("/courses/:id/assignments", c.assignment.ListForCourse)
	rg.GET("/assignments/:id", c.assignment.Get)

	// 选课
	rg.POST("/courses/:id/enroll", middleware.RoleMiddleware(model.Student), c.course.Enroll)
	rg.DELETE("/courses/:id/enroll", middleware.RoleMiddleware(model.Student), c.course.Drop)

	// 作业提交
	rg.POST("/assignments/:id/submissions", middleware.RoleMiddleware(model.Student), c.submission.Submit)
	rg.GET("/submissions/mine", c.submission.ListMine)
	rg.GET("/submissions/:id/download", c.submission.Download)

	// 成绩与投影
	rg.GET("/grades/course/:courseId", c.grade.ListMine)
	rg.GET("/grades/projected/:courseId", c.grade.GetMyProjection)
	rg.GET("/courses/:id/projected-grade/:studentId", c.grade.GetStudentProjection)
}

func (a *App) registerProfessorRoutes(rg *gin.RouterGroup, c *controllers) {
	professor := rg.Group("/")
	professor.Use(middleware.RoleMiddleware(model.Professor, model.Admin))
	{
		// 课程管理
		professor.POST("/courses", c.course.Create)
		professor.PUT("/courses/:id", c.course.Update)
		professor.PATCH("/courses/:id/archive", c.course.Archive)
		professor.DELETE("/courses/:id", c.course.Delete)

		// 成绩构成项
		professor.POST("/courses/:id/components", c.course.CreateComponent)
		professor.PUT("/courses/:id/components/:componentId", c.course.UpdateComponent)
		professor.DELETE("/courses/:id/components/:componentId", c.course.DeleteComponent)

		// 分数段
		professor.POST("/courses/:id/bands", c.course.CreateBand)
		professor.PUT("/courses/:id/bands/:bandId", c.course.UpdateBand)
		professor.DELETE("/courses/:id/bands/:bandId", c.course.DeleteBand)

		// 花名册
		professor.GET("/courses/:id/roster", c.course.ListRoster)
		professor.PATCH("/courses/:id/roster/:studentId/complete", c.course.CompleteEnrollment)

		// 作业管理
		professor.POST("/courses/:id/assignments", c.assignment.Create)
		professor.PUT("/assignments/:id", c.assignment.Update)
		professor.DELETE("/assignments/:id", c.assignment.Delete)
		professor.PATCH("/assignments/:id/status", c.assignment.SetStatus)
		professor.POST("/assignments/:id/attachment", c.assignment.UploadAttachment)

		// 提交批改
		professor.GET("/assignments/:id/submissions", c.submission.ListForAssignment)
		professor.POST("/submissions/:id/grade", c.submission.Grade)
		professor.GET("/assignments/:id/grades", c.grade.ListForAssignment)

		// 成绩录入
		professor.POST("/courses/:id/grades", c.grade.Record)
		professor.PUT("/grades/:id", c.grade.Update)
		professor.DELETE("/grades/:id", c.grade.Delete)

		// 成绩册
		professor.GET("/courses/:id/gradebook", c.grade.GetGradebook)

		// 课程资料
		professor.POST("/courses/:id/materials", c.material.Upload)
		professor.DELETE("/materials/:id", c.material.Delete)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PATCH("/users/:id/disabled", c.user.SetDisabled)
	}
}
