package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/config"
	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/handler"
	"github.com/smallwins/internal/logging"
	"github.com/smallwins/internal/router"
	"github.com/smallwins/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.LogLevel)
	ctx := context.Background()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
	}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var vision service.Estimator
	if cfg.VisionProvider == config.VisionProviderRekognition {
		est, err := service.NewRekognitionEstimator(ctx, cfg.AWSRegion)
		if err != nil {
			logger.Warn(ctx, "rekognition unavailable, using local estimator", "error", err)
		} else {
			vision = est
		}
	}

	api := handler.NewAPI(db.DB, handler.Options{
		Vision: vision,
		Health: service.MockHealthProvider{Enabled: cfg.HealthMock},
		Logger: logger,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	logger.Info(ctx, "server starting", "addr", cfg.ListenAddr, "database", cfg.DatabaseDriver, "vision", cfg.VisionProvider)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
