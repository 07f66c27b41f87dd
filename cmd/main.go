package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pump_launch/internal/api"
	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/launcher"
	"pump_launch/internal/wallet"
)

func main() {
	// 定义命令行参数
	envFile := flag.String("env", ".env", "环境变量文件")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := common.ConfigureLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	signer, err := wallet.Load(cfg.PrivateKey, cfg.KeypairPath)
	if err != nil {
		common.Log.Fatalf("加载钱包失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := launcher.Setup(ctx, cfg)
	if err != nil {
		common.Log.Fatalf("初始化失败: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(l, signer, cfg.ExternalViewBase),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		common.Log.Infof("API 服务已启动 %s，钱包 %s", cfg.HTTPAddr, signer.PublicKey())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.Log.Fatalf("API 服务错误: %v", err)
		}
	}()

	fmt.Println("发行服务已启动. 按CTRL+C退出.")

	// 等待终止信号
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("正在关闭发行服务...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ConfirmTimeout+5*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		common.Log.WithError(err).Warn("关闭 API 服务出错")
	}
	if err := l.Close(); err != nil {
		common.Log.WithError(err).Warn("关闭 Launcher 出错")
	}

	fmt.Println("发行服务已正常关闭.")
}
