package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drawguess_web/internal/api/handlers"
	"drawguess_web/internal/middleware"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, repos *repository.Repositories) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket)
	leaderboardHandler := handlers.NewLeaderboardHandler(repos.Score, repos.ActivityLog)
	wordHandler := handlers.NewWordHandler(services.WordBank, repos.ActivityLog)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 排行榜
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// 題庫分類（唯讀部分公開）
		api.GET("/categories", wordHandler.GetCategories)
		api.GET("/categories/:category/words", wordHandler.GetWords)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// 猜畫房間：建立、加入、輪詢快照、WebSocket 連線
		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomHandler.CreateRoom)               // 創建房間
			rooms.POST("/:code/join", roomHandler.JoinRoom)      // 加入房間
			rooms.GET("/:code", roomHandler.GetRoom)             // 獲取房間快照
			rooms.GET("/:code/ws", wsHandler.HandleWebSocket)    // WebSocket 連接點
		}
	}

	// 需要驗證的路由（管理後台）
	authorized := api.Group("/admin")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/categories", wordHandler.AddCategory)
		authorized.POST("/categories/:category/words", wordHandler.AddWord)
		authorized.GET("/activities", leaderboardHandler.GetActivities)
	}
}
