package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/application/usecase"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	"github.com/nexlearn/agenthub/internal/interfaces/http/handlers"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// Config HTTP服务器配置
type Config struct {
	Host        string
	Port        int
	Mode        string // local, production
	ServiceName string
	Version     string
}

// NewServer 创建HTTP服务器
func NewServer(cfg Config, agentUC *usecase.AgentUseCase, voiceUC *usecase.VoiceUseCase, monitor *monitoring.Monitor, logger *zap.Logger) *Server {
	// 设置Gin模式
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(ginLogger(logger))
	router.Use(monitorMiddleware(monitor))

	// 初始化处理器
	agentHandler := handlers.NewAgentHandler(agentUC, logger)
	voiceHandler := handlers.NewVoiceHandler(voiceUC, logger)
	statusHandler := handlers.NewStatusHandler(cfg.ServiceName, cfg.Version, monitor)

	// 注册路由
	setupRoutes(router, agentHandler, voiceHandler, statusHandler, monitor)

	// 创建HTTP服务器
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return &Server{
		server: server,
		logger: logger,
	}
}

// Start 启动服务器
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop 停止服务器
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// setupRoutes 设置路由
func setupRoutes(router *gin.Engine, agentHandler *handlers.AgentHandler, voiceHandler *handlers.VoiceHandler, statusHandler *handlers.StatusHandler, monitor *monitoring.Monitor) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// 存活探针
	router.GET("/status", statusHandler.Status)
	router.GET("/stats", statusHandler.Stats)

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(monitor.PrometheusHandler()))

	// 创作者智能体 CRUD
	creator := router.Group("/creator")
	{
		creator.POST("/agents", agentHandler.Create)
		creator.GET("/agents", agentHandler.List)
		creator.GET("/agents/:id", agentHandler.Get)
		creator.PUT("/agents/:id", agentHandler.Update)
		creator.DELETE("/agents/:id", agentHandler.Delete)
	}

	// 用户音色
	voices := router.Group("/voices")
	{
		voices.POST("/clone", voiceHandler.Clone)
		voices.GET("", voiceHandler.List)
		voices.DELETE("/:voice_id", voiceHandler.Delete)
	}
}

// ginLogger Gin日志中间件
func ginLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// monitorMiddleware 请求计数与延迟统计
func monitorMiddleware(monitor *monitoring.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		monitor.IncRequestTotal()

		c.Next()

		monitor.RecordRequestLatency(time.Since(start))
		if c.Writer.Status() >= http.StatusInternalServerError {
			monitor.IncRequestFailed()
			monitor.IncError()
		} else {
			monitor.IncRequestSuccess()
		}
	}
}

// corsMiddleware 跨域响应头
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
