// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-smart-go/internal/config"
	"career-smart-go/internal/handler"
	"career-smart-go/internal/middleware"
	"career-smart-go/internal/pipeline"
	"career-smart-go/internal/repository"
	"career-smart-go/internal/service"
	"career-smart-go/pkg/advisor"
	"career-smart-go/pkg/database"
	"career-smart-go/pkg/kafka"
	"career-smart-go/pkg/log"
	"career-smart-go/pkg/storage"
	"career-smart-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、MinIO 与 Kafka
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)
	assessmentRepo := repository.NewAssessmentRepository(database.DB)
	resumeRepo := repository.NewResumeRepository(database.DB)
	dashboardCache := repository.NewDashboardCache(database.RDB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	advisorClient := advisor.NewClient()
	userService := service.NewUserService(userRepo, chatRepo, assessmentRepo, resumeRepo, jwtManager)
	adminService := service.NewAdminService(userRepo, chatRepo, assessmentRepo, resumeRepo, dashboardCache)
	chatService := service.NewChatService(chatRepo, advisorClient)
	assessmentService := service.NewAssessmentService(assessmentRepo, advisorClient)
	resumeService := service.NewResumeService(resumeRepo, cfg.MinIO, cfg.Upload)

	// 6. 初始化简历处理管道 (Processor) 并启动后台 Kafka 消费者
	processor := pipeline.NewProcessor(cfg.MinIO, resumeRepo)
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// multipart 内存上限与单文件大小限制保持一致
	r.MaxMultipartMemory = cfg.Upload.MaxFileSize

	// 8. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			authHandler := handler.NewAuthHandler(userService)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refreshToken", authHandler.RefreshToken)

			authed := auth.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.POST("/logout", authHandler.Logout)
			}
		}

		// User 路由组，需要认证
		user := apiV1.Group("/user")
		user.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			userHandler := handler.NewUserHandler(userService)
			user.GET("/dashboard", userHandler.GetDashboard)
			user.PUT("/profile", userHandler.UpdateProfile)
		}

		// Career 路由组，需要认证
		career := apiV1.Group("/career")
		career.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			careerHandler := handler.NewCareerHandler(chatService, assessmentService)
			resumeHandler := handler.NewResumeHandler(resumeService)
			career.POST("/chat", careerHandler.Chat)
			career.GET("/chat/:sessionId", careerHandler.GetChatHistory)
			career.POST("/quiz", careerHandler.Quiz)
			career.POST("/resume", resumeHandler.Upload)
			career.GET("/assessments", careerHandler.GetAssessments)
		}

		// Admin 路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtManager, userService), middleware.AdminAuthMiddleware())
		{
			adminHandler := handler.NewAdminHandler(adminService)
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:userId/role", adminHandler.UpdateUserRole)
			admin.DELETE("/users/:userId", adminHandler.DeleteUser)
		}
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
