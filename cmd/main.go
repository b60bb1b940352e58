package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"modconsole.com/internal/api"
	"modconsole.com/internal/config"
	"modconsole.com/internal/engine"
	"modconsole.com/internal/infra"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化基础设施
	db, err := infra.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	rdb, err := infra.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// 3. 初始化引擎（审计订阅、保留期清理）
	eng := engine.NewEngine(cfg, db, rdb)
	eng.Start(context.Background())

	// 4. 设置 Fiber 服务器
	app := api.NewServer(cfg, eng)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Server shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Console starting on port %s (moderation service %s)", cfg.Server.Port, cfg.API.BaseURL)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	eng.Stop()
	if err := rdb.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	log.Println("Console stopped")
}
