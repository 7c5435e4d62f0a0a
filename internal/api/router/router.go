package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/api/handler"
	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/service"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

// Setup 设置路由
func Setup(cfg *config.Config, st *store.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessWithMessage(c, "Issue Tracker API is running!", gin.H{
			"timestamp": store.Now(),
		})
	})

	// 欢迎页
	r.GET("/", func(c *gin.Context) {
		utils.SuccessWithMessage(c, "Welcome to Issue Tracker API", gin.H{
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":      "/api/auth",
				"users":     "/api/users",
				"teams":     "/api/teams",
				"tasks":     "/api/tasks",
				"comments":  "/api/comments",
				"dashboard": "/api/dashboard",
				"health":    "/health",
			},
		})
	})

	// 未匹配路由统一返回 NOT_FOUND 信封
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.Response{
			Success: false,
			Error:   pkgErrors.ErrNotFound.WithMessage("Endpoint not found"),
		})
	})

	// 初始化Repository
	userRepo := repository.NewUserRepository(st)
	teamRepo := repository.NewTeamRepository(st)
	taskRepo := repository.NewTaskRepository(st)
	commentRepo := repository.NewCommentRepository(st)
	historyRepo := repository.NewHistoryRepository(st)

	// 初始化Service
	consistencyService := service.NewConsistencyService(logger, userRepo, teamRepo, taskRepo)
	authService := service.NewAuthService(&cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, teamRepo, consistencyService)
	teamService := service.NewTeamService(teamRepo, userRepo, consistencyService)
	taskService := service.NewTaskService(taskRepo, userRepo, teamRepo, commentRepo, historyRepo)
	commentService := service.NewCommentService(commentRepo, taskRepo, userRepo)
	dashboardService := service.NewDashboardService(taskRepo, commentRepo, historyRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	teamHandler := handler.NewTeamHandler(teamService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	api := r.Group("/api")
	{
		// 认证相关(登录无需token)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", middleware.AuthMiddleware(), authHandler.GetMe)
		}

		// 需要认证的路由
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			// 用户管理
			users := authed.Group("/users")
			{
				users.GET("", userHandler.List)
				users.POST("", middleware.RequireRoles(constants.RoleAdmin), userHandler.Create)
				users.PUT("/:id", middleware.RequireRoles(constants.RoleAdmin), userHandler.Update)
			}

			// 团队管理
			teams := authed.Group("/teams")
			{
				teams.GET("", teamHandler.List)
				teams.POST("", middleware.RequireRoles(constants.RoleAdmin), teamHandler.Create)
				teams.PUT("/:id", middleware.RequireRoles(constants.RoleAdmin), teamHandler.Update)
				teams.GET("/:id/members", teamHandler.Members)
			}

			// 任务管理
			tasks := authed.Group("/tasks")
			{
				tasks.GET("", taskHandler.List)
				tasks.POST("", middleware.RequireRoles(constants.RoleTeamLead, constants.RoleAdmin), taskHandler.Create)
				tasks.GET("/:id", taskHandler.Get)
				tasks.PUT("/:id", taskHandler.Update)
				tasks.POST("/:id/comments", commentHandler.Create)
			}

			// 评论直接操作
			comments := authed.Group("/comments")
			{
				comments.PUT("/:id", commentHandler.Update)
				comments.DELETE("/:id", commentHandler.Delete)
			}

			// 仪表盘
			authed.GET("/dashboard/stats", dashboardHandler.Stats)
		}
	}

	return r
}
