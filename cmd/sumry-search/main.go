package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumry-app/SUMRY-sub001/api"
	"github.com/sumry-app/SUMRY-sub001/config"
	"github.com/sumry-app/SUMRY-sub001/internal/analytics"
	"github.com/sumry-app/SUMRY-sub001/internal/engine"
	"github.com/sumry-app/SUMRY-sub001/internal/logger"
	"github.com/sumry-app/SUMRY-sub001/pkg/metrics"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		configPath = flag.String("config", "", "Path to a YAML config file")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Sumry Search - In-memory search engine for progress records\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                             # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                 # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config config.yaml        # Load settings from a config file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Sumry Search v1.0.0\n")
		fmt.Printf("Fuzzy matching, query operators, filtering, and progress analytics\n")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	searchEngine, err := engine.NewEngine(cfg.Engine, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize engine", zap.Error(err))
	}
	defer searchEngine.Close()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxRequestBytes))

	// Setup API routes
	server := api.NewAPI(searchEngine, analytics.NewService(), metrics.New(), zlog)
	server.SetupRoutes(router)

	// Start the server
	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
