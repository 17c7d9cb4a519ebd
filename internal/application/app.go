package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexlearn/agenthub/internal/application/usecase"
	"github.com/nexlearn/agenthub/internal/domain/repository"
	"github.com/nexlearn/agenthub/internal/domain/service"
	"github.com/nexlearn/agenthub/internal/infrastructure/config"
	"github.com/nexlearn/agenthub/internal/infrastructure/monitoring"
	"github.com/nexlearn/agenthub/internal/infrastructure/persistence"
	"github.com/nexlearn/agenthub/internal/infrastructure/trainer"
	httpServer "github.com/nexlearn/agenthub/internal/interfaces/http"
	"github.com/nexlearn/agenthub/pkg/safego"
)

// ServiceName 服务名，状态探针和日志里统一使用
const ServiceName = "agenthub"

// App 应用程序（依赖注入容器）
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB

	// 仓储层
	agentRepo repository.AgentRepository
	voiceRepo repository.VoiceRepository

	// 应用服务
	agentUseCase *usecase.AgentUseCase
	voiceUseCase *usecase.VoiceUseCase

	// 基础设施
	monitor         *monitoring.Monitor
	httpServer      *httpServer.Server
	logLevelWatcher *service.LogLevelWatcher
}

// NewApp 创建应用程序
func NewApp(cfg *config.Config, logger *zap.Logger, level zap.AtomicLevel, version string) (*App, error) {
	app := &App{
		config: cfg,
		logger: logger,
	}

	db, err := persistence.NewDBConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	app.db = db

	app.agentRepo = persistence.NewGormAgentRepository(db)
	app.voiceRepo = persistence.NewGormVoiceRepository(db)

	app.monitor = monitoring.NewMonitor(logger)

	// 训练服务未启用时传 nil，创建流程自动跳过旁路注册
	var trainerClient usecase.TrainerClient
	if cfg.Trainer.Enabled {
		trainerClient = trainer.NewHTTPClient(cfg.Trainer, logger)
	}

	app.agentUseCase = usecase.NewAgentUseCase(app.agentRepo, trainerClient, app.monitor, logger)
	app.voiceUseCase = usecase.NewVoiceUseCase(app.voiceRepo, app.monitor, logger)

	app.httpServer = httpServer.NewServer(httpServer.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		ServiceName: ServiceName,
		Version:     version,
	}, app.agentUseCase, app.voiceUseCase, app.monitor, logger)

	// 本地配置文件存在时启用日志级别热更新
	if path := config.LocalPath(); path != "" {
		watcher, err := service.NewLogLevelWatcher(path, level, logger)
		if err != nil {
			logger.Warn("Log level watcher unavailable", zap.Error(err))
		} else {
			app.logLevelWatcher = watcher
		}
	}

	return app, nil
}

// Start 启动应用
func (a *App) Start(ctx context.Context) error {
	if a.logLevelWatcher != nil {
		safego.Go(a.logger, "loglevel-watcher", a.logLevelWatcher.Start)
	}
	return a.httpServer.Start(ctx)
}

// Stop 优雅停机：先停 HTTP，再还连接池
func (a *App) Stop(ctx context.Context) error {
	if a.logLevelWatcher != nil {
		a.logLevelWatcher.Stop()
	}

	if err := a.httpServer.Stop(ctx); err != nil {
		return err
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// AgentUseCase 返回智能体应用服务
func (a *App) AgentUseCase() *usecase.AgentUseCase {
	return a.agentUseCase
}

// VoiceUseCase 返回音色应用服务
func (a *App) VoiceUseCase() *usecase.VoiceUseCase {
	return a.voiceUseCase
}

// Logger 返回日志实例
func (a *App) Logger() *zap.Logger {
	return a.logger
}
