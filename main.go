package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file_tools/api"
	"file_tools/bgremove"
	"file_tools/pdf"
	"file_tools/raster"
	"file_tools/render"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	// DefaultMaxFileSize is the default maximum file size (20MB)
	DefaultMaxFileSize = 20 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultLogLevel is used when neither flag, env nor config set one
	DefaultLogLevel = "info"

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout covers rasterizing and rebuilding large PDFs
	ServerWriteTimeout = 120 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}

	log := newLogger(config.LogLevel)

	fonts, err := raster.LoadFontSet(config.Fonts)
	if err != nil {
		log.WithError(err).Fatal("Failed to load fonts")
	}
	if config.RemoveBGKey == "" {
		log.Warn("REMOVE_BG_API_KEY is not set, background removal requests will fail")
	}
	remover := bgremove.NewClient(config.RemoveBGURL, config.RemoveBGKey)

	r := newRouter(config, fonts, render.Load, remover, log)

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.API.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":          srv.Addr,
			"max_file_size": config.API.MaxFileSize,
			"log_level":     config.LogLevel.String(),
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}

func newLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func newRouter(config *appConfig, fonts *raster.FontSet, load pdf.Loader, remover bgremove.Remover, log *logrus.Logger) *gin.Engine {
	if config.LogLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.RecoveryWithWriter(log.WriterLevel(logrus.ErrorLevel)))

	// SetupRoutes attaches the request logger, so every route comes after it
	api.SetupRoutes(r, api.NewServer(&config.API, fonts, load, remover, log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "file_tools",
		})
	})
	return r
}
