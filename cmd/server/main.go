package main

import (
	"fmt"
	"os"
	"path/filepath"

	"otobook-rpa-service/internal/catalog"
	"otobook-rpa-service/internal/config"
	"otobook-rpa-service/internal/engine"
	"otobook-rpa-service/internal/handler"
	"otobook-rpa-service/internal/log"
	"otobook-rpa-service/internal/metrics"
	"otobook-rpa-service/internal/models"
	"otobook-rpa-service/internal/repository"
	"otobook-rpa-service/internal/service"
	"otobook-rpa-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{Use: "rpa-service"}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the RPA automation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return serve(configPath)
		},
	}
	serveCmd.Flags().String("config", "config.toml", "path to the TOML config file")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath string) error {
	logger := log.GetLogger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Workflow{},
		&models.WorkflowRun{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Wiring: catalog and repositories feed the engine, the service
	// fronts them all.
	cat := catalog.New()
	workflowRepo := repository.NewWorkflowRepository(db)
	historyRepo := repository.NewRunHistoryRepository(db)

	hub := websocket.NewHub()
	go hub.Run()

	metricsReg := metrics.NewRegistry()
	eng := engine.NewEngine(workflowRepo, historyRepo, engine.NewDefaultRegistry(), hub, metricsReg)
	rpaService := service.NewRPAService(cat, workflowRepo, historyRepo, eng, cfg.RPA)

	rpaHandler := handler.NewRPAHandler(rpaService)
	wsHandler := handler.NewWebSocketHandler(hub)

	r := gin.Default()
	r.Use(corsMiddleware())

	rpaHandler.RegisterRoutes(r)
	wsHandler.RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "otobook-rpa-service",
		})
	})
	r.GET("/metrics", gin.WrapH(metricsReg.Handler()))

	addr := cfg.Server.GetAddr()
	logger.Infof("Starting RPA automation service on %s", addr)
	return r.Run(addr)
}

func loadConfig(configPath string) (*config.Config, error) {
	if envPath := os.Getenv("CONFIG_FILE"); envPath != "" {
		configPath = envPath
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.GetLogger().Warnf("Config file %s not found, using defaults", configPath)
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(configPath)
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Type {
	case "sqlite":
		dbPath := cfg.Database.DSN
		if dbPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
