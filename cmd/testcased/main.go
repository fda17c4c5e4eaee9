package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/export"
	"github.com/jiwoo-han/testcase-gen/internal/extract"
	"github.com/jiwoo-han/testcase-gen/internal/llm"
	"github.com/jiwoo-han/testcase-gen/internal/llm/gemini"
	"github.com/jiwoo-han/testcase-gen/internal/pipeline"
	"github.com/jiwoo-han/testcase-gen/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Generation backend
	backend, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Timeout:         cfg.LLM.Timeout,
	}, slogger)
	if err != nil {
		log.Fatalf("gemini client: %v", err)
	}
	generator, err := llm.NewGenerator(backend, slogger)
	if err != nil {
		log.Fatalf("generator: %v", err)
	}

	// Pipeline
	proc := pipeline.NewProcessor(
		extract.NewExtractor(slogger),
		generator,
		export.NewService(slogger),
		slogger,
	)
	proc.MaxBytes = cfg.Upload.MaxBytes
	proc.MinTextChars = cfg.Upload.MinTextChars

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	server.NewServer(proc, slogger).Register(e)

	log.Infof("http serving on %s", cfg.Server.HTTPAddr)
	go func() {
		if err := e.Start(cfg.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
