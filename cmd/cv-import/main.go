package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-import-go/internal/api/handler"
	"cv-import-go/internal/api/router"
	"cv-import-go/internal/config"
	"cv-import-go/internal/importer"
	"cv-import-go/internal/outbox"
	"cv-import-go/internal/parser"
	"cv-import-go/internal/storage"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/pflag"

	appCoreLogger "cv-import-go/internal/logger"

	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

var (
	version     = "1.0.0"        //nolint:gochecknoglobals
	serviceName = "cv-import-go" //nolint:gochecknoglobals
)

// @title CV Import API
// @version 1.0
// @description 简历导入服务的API文档。
// @BasePath /api/v1
func main() {
	initLogger()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 启动消息中继，把 outbox 表中的待发事件发布到 RabbitMQ
	var messageRelay *outbox.MessageRelay
	if storageManager.MySQL != nil && storageManager.RabbitMQ != nil {
		relayLogger := log.New(appCoreLogger.Logger, "[MessageRelay] ", log.LstdFlags|log.Lshortfile)
		messageRelay = outbox.NewMessageRelay(storageManager.MySQL.DB(), storageManager.RabbitMQ, storageManager.Redis, relayLogger)
		messageRelay.Start()
		glog.Info("消息中继服务已启动")
	} else {
		glog.Warn("MySQL或RabbitMQ未初始化，消息中继未启动")
	}

	// 文本提取器
	extractorLogger := log.New(appCoreLogger.Logger, "[ExtractorMain] ", log.LstdFlags)
	textExtractor, err := parser.NewCVTextExtractor(ctx, parser.WithExtractorLogger(extractorLogger))
	if err != nil {
		glog.Fatalf("创建简历文本提取器失败: %v", err)
	}
	glog.Info("简历文本提取器初始化成功")

	// 结构化解析器
	var parserLogger *log.Logger
	if cfg.Logger.Level == "debug" {
		parserLogger = log.New(appCoreLogger.Logger, "[ParserMain] ", log.LstdFlags|log.Lshortfile)
	}
	cvParser := parser.NewStructuredCVParser(parser.WithParserLogger(parserLogger))

	// 导入协调器
	importerLogger := log.New(appCoreLogger.Logger, "[ImporterMain] ", log.LstdFlags)
	cvImporter, err := importer.NewCVImporter(
		&importer.Components{
			Extractor: textExtractor,
			Parser:    cvParser,
		},
		&importer.Settings{},
		importer.WithDebug(cfg.Logger.Level == "debug"),
		importer.WithLogger(importerLogger),
	)
	if err != nil {
		glog.Fatalf("初始化简历导入器失败: %v", err)
	}
	glog.Info("简历导入器初始化成功")

	importHandler := handler.NewCVImportHandler(cfg, storageManager, cvImporter)
	glog.Info("导入处理器初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, importHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	if messageRelay != nil {
		messageRelay.Stop()
		glog.Info("消息中继服务已停止")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger() {
	logFilePath := "logs/app.log"
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Fatalf("无法创建日志目录: %v", err)
	}
	fileWriter, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("无法打开日志文件 %s: %v", logFilePath, err)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	multiWriter := zerolog.MultiLevelWriter(consoleWriter, fileWriter)

	level := zerolog.DebugLevel
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = "15:04:05"

	logger := zerolog.New(multiWriter).With().
		Timestamp().
		Caller().
		Str("app", serviceName).
		Str("version", version).
		Logger()

	appCoreLogger.Logger = logger
	zlog.Logger = logger

	// Hertz 的日志也走同一个 zerolog 实例
	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
	glog.SetLevel(glog.LevelDebug)

	log.Println("Logger initialized with Zerolog, writing to console and file:", logFilePath)
}
