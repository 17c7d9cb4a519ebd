package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/application"
	"github.com/nexlearn/agenthub/internal/infrastructure/config"
	"github.com/nexlearn/agenthub/internal/infrastructure/logger"
	"github.com/nexlearn/agenthub/internal/infrastructure/persistence"
)

const (
	appName    = "agenthub"
	appVersion = "0.3.1"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "agenthub — creator agent and voice service",
		RunE:  runServe,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE:  runServe,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n", appName, appVersion)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "环境诊断：配置、数据库、训练服务连通性",
		RunE:  runDoctor,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log, level, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: "stdout",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting agenthub",
		zap.String("name", appName),
		zap.String("version", appVersion),
	)

	// Create application context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize application
	app, err := application.NewApp(cfg, log, level, appVersion)
	if err != nil {
		log.Error("Failed to initialize application", zap.Error(err))
		return err
	}

	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		return err
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
		return err
	}

	log.Info("Application stopped successfully")
	return nil
}

// runDoctor 逐项检查运行环境
func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Printf("%s v%s doctor\n\n", appName, appVersion)

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("✗ config: %v\n", err)
		return err
	}
	fmt.Println("✓ config loaded")

	if _, err := persistence.NewDBConnection(&cfg.Database); err != nil {
		fmt.Printf("✗ database (%s): %v\n", cfg.Database.Type, err)
		return err
	}
	fmt.Printf("✓ database reachable (%s)\n", cfg.Database.Type)

	if !cfg.Trainer.Enabled {
		fmt.Println("- trainer disabled, skipping")
		return nil
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(cfg.Trainer.BaseURL + "/health")
	if err != nil {
		fmt.Printf("✗ trainer (%s): %v\n", cfg.Trainer.BaseURL, err)
		return err
	}
	resp.Body.Close()
	fmt.Printf("✓ trainer reachable (%s, status %d)\n", cfg.Trainer.BaseURL, resp.StatusCode)

	return nil
}
