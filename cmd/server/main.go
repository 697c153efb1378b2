package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/config"
	"github.com/blues/rfs/internal/event"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/logic"
	"github.com/blues/rfs/internal/repository"
	"github.com/blues/rfs/internal/router"
	"github.com/blues/rfs/internal/task"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 加载配置
	cfg := config.Load()

	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	codec, err := chain.NewEventCodec()
	if err != nil {
		logger.Fatal("Failed to initialize event codec: %v", err)
	}
	services := logic.NewServices(db, codec)

	// 按配置引导平台
	if cfg.Platform.Authority != "" {
		state, err := services.Platform.EnsureInitialized(cfg.Platform.Authority, cfg.Platform.FeeRate, cfg.Platform.MinFundingAmount, time.Now().UTC())
		if err != nil {
			logger.Fatal("Failed to bootstrap platform: %v", err)
		}
		logger.Info("Platform authority %s, paused=%t", state.Authority, state.IsPaused)
	} else {
		logger.Warn("platform.authority not set, waiting for POST /api/v1/platform/initialize")
	}

	// 事件处理器
	processors := []event.EventProcessor{event.NewLogProcessor()}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		processors = append(processors, event.NewRedisProcessor(rdb, cfg.Redis.Channel))
		logger.Info("Publishing events to redis channel %s", cfg.Redis.Channel)
	}
	dispatcher := event.NewDispatcher(services.Event, codec, event.NewProcessorManager(processors...), cfg.Task.EventBatchSize)

	// 启动定时任务
	tasks, err := task.NewManager(
		task.NewEventDispatchJob(dispatcher, cfg.Task),
		task.NewProjectExpiryJob(services.Project, cfg.Task),
	)
	if err != nil {
		logger.Fatal("Failed to create task manager: %v", err)
	}
	if err := tasks.Start(); err != nil {
		logger.Fatal("Failed to start task manager: %v", err)
	}
	defer tasks.Stop()

	// 初始化路由
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.Setup(services, cfg.Server.Mode),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}
