package main

import (
	"aio-webcare/internal/api"
	"aio-webcare/internal/conf"
	"aio-webcare/internal/database"
	"aio-webcare/internal/repository"
	"aio-webcare/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Config
	cfg, err := conf.LoadConfig()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}

	// 2. Database
	mongoClient, err := database.Connect(cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("Database error: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)

	// 3. Dependency Injection (依賴注入)
	// Repo -> Service -> Handler
	websiteRepo := repository.NewMongoWebsiteRepo(db)
	taskRepo := repository.NewMongoTaskRepo(db)
	backupRepo := repository.NewMongoBackupRepo(db)
	userRepo := repository.NewMongoUserRepo(db)
	settingsRepo := repository.NewMongoSettingsRepo(db)

	wrmClient := service.NewWRMClient(cfg.WRM)
	cache := service.NewTTLCache()
	notifierService := service.NewNotifierService(websiteRepo, settingsRepo)
	refreshService := service.NewRefreshService(websiteRepo, wrmClient, notifierService, cache, cfg.Refresh, cfg.WRM)
	backupService := service.NewBackupService(websiteRepo, backupRepo, wrmClient)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	schedulerService := service.NewSchedulerService(refreshService, backupService, cfg.Refresh)

	authHandler := api.NewAuthHandler(authService)
	websiteHandler := api.NewWebsiteHandler(websiteRepo, refreshService)
	statsHandler := api.NewStatsHandler(refreshService)
	taskHandler := api.NewTaskHandler(taskRepo)
	backupHandler := api.NewBackupHandler(backupRepo, backupService)
	settingsHandler := api.NewSettingsHandler(settingsRepo, notifierService)

	// 4. Gin Router Setup
	r := gin.Default()

	// 設定 CORS (因為前後分離，必須允許跨域)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE,PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 不用登入的路由 (註冊/登入/忘記密碼)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// 儀表板路由 (要帶 JWT)
	v1 := r.Group("/api/v1")
	v1.Use(api.AuthRequired(authService))
	{
		v1.GET("/websites", websiteHandler.GetWebsites)                  // 列表查詢
		v1.POST("/websites", websiteHandler.CreateWebsite)               // 新增網站
		v1.DELETE("/websites/:id", websiteHandler.DeleteWebsite)         // 移除網站
		v1.POST("/websites/sync", websiteHandler.SyncWebsites)           // 觸發刷新
		v1.GET("/websites/:id/updates", websiteHandler.GetWebsiteUpdates)
		v1.GET("/websites/:id/backups", backupHandler.GetBackups)
		v1.POST("/websites/:id/backups", backupHandler.TriggerBackup) // 觸發備份

		v1.GET("/stats", statsHandler.GetStats) // 儀表板總覽

		v1.GET("/tasks", taskHandler.GetTasks)
		v1.POST("/tasks", taskHandler.CreateTask)
		v1.PATCH("/tasks/:id/complete", taskHandler.CompleteTask)
		v1.DELETE("/tasks/:id", taskHandler.DeleteTask)

		v1.GET("/settings", settingsHandler.GetSettings)
		v1.POST("/settings", settingsHandler.SaveSettings)
		v1.POST("/settings/test", settingsHandler.TestWebhook)
	}

	// 5. 啟動排程 (定期刷新 + 每日備份)
	schedulerService.Start()
	defer schedulerService.Stop()

	// 6. Start Server
	logrus.Infof("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		logrus.Fatalf("Server startup failed: %v", err)
	}
}
