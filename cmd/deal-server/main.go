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

	"github.com/iwvelando/deal-calculator/internal/config"
	"github.com/iwvelando/deal-calculator/internal/server"
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	configLocation := flag.String("config", "", "path to dealer configuration file (overrides dealerConfig)")
	envLocation := flag.String("env-file", constants.DefaultEnvFile, "optional .env file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadEnv(*envLocation); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envLocation, err)
		os.Exit(1)
	}

	srvConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		srvConf.Address = *address
	}
	if *configLocation != "" {
		srvConf.DealerConfig = *configLocation
	}

	logger, err := config.NewLogger(srvConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	defaults := config.Default()
	if srvConf.DealerConfig != "" {
		defaults, err = config.LoadConfiguration(srvConf.DealerConfig)
		if err != nil {
			logger.Fatal("failed to load dealer configuration",
				zap.String("op", "main"),
				zap.String("path", srvConf.DealerConfig),
				zap.Error(err),
			)
		}
		for _, warning := range defaults.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}
	}

	httpServer := &http.Server{
		Addr: srvConf.Address,
		Handler: server.NewHandler(logger, server.Options{
			MaxRequestSize: srvConf.RequestSizeBytes(),
			Version:        version,
			Defaults:       defaults,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", srvConf.Address),
			zap.Int64("maxRequestSize", srvConf.RequestSizeBytes()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
