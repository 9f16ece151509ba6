package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"paipu/analyzer/api"
	"paipu/common/config"
	"paipu/common/http"
	"paipu/common/log"
	"paipu/core/container"
)

// Run 启动 HTTP 服务和 nats 回放队列，收到退出信号后优雅关闭
func Run(ctx context.Context, conf *config.Config) error {
	replayContainer, err := container.NewReplayContainer(ctx, conf)
	if err != nil {
		return fmt.Errorf("analyzer 容器初始化失败: %w", err)
	}
	defer func() {
		if err := replayContainer.Close(); err != nil {
			log.Error("关闭 analyzer 容器失败: %v", err)
		}
	}()

	if err := replayContainer.Worker.Start(); err != nil {
		return fmt.Errorf("replay worker 启动失败: %w", err)
	}

	mode := gin.ReleaseMode
	if conf.Log.Level == "debug" {
		mode = gin.DebugMode
	}
	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(mode),
	)
	server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
	)
	// rateLimit 为 0 时不限流，热更新后直接生效
	limiter := http.NewRateLimiter(conf.ReplayConf.RateLimit, conf.ReplayConf.RateBurst)
	config.OnChange(func(next *config.Config) {
		limiter.SetLimit(next.ReplayConf.RateLimit, next.ReplayConf.RateBurst)
	})
	api.RegisterRoutes(server, replayContainer.ReplayService, limiter)

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		errCh <- server.Start()
	}()

	stop := func() {
		log.Info("正在关闭 analyzer 服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)
	select {
	case <-ctx.Done():
		stop()
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP 服务器启动失败: %w", err)
		}
		return nil
	case s := <-c:
		stop()
		log.Info("收到信号 %v，服务停止", s)
		return nil
	}
}
