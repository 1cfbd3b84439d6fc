package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"drawguess_web/internal/api"
	"drawguess_web/internal/imagegen"
	"drawguess_web/internal/models"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/service"
	"drawguess_web/internal/storage"
	"drawguess_web/internal/wordbank"
	"drawguess_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	// 房間狀態全部放在記憶體；資料庫只存用戶、排行榜與活動紀錄
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}, &models.HighScore{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 初始化題庫與文生圖客戶端
	words := wordbank.NewBank()
	generator := imagegen.NewStabilityClient(imagegen.Config{
		APIKey:  cfg.Stability.APIKey,
		Engine:  cfg.Stability.Engine,
		BaseURL: cfg.Stability.BaseURL,
		Timeout: cfg.Stability.Timeout(),
	})

	// 初始化 services
	services := service.NewServices(repos, words, generator)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, repos)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
