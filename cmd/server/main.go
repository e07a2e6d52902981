package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MaelVB/Drawsyn-sub000/internal/api"
	"github.com/MaelVB/Drawsyn-sub000/internal/factory"
	"github.com/MaelVB/Drawsyn-sub000/internal/web"
)

func main() {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.Log)
	defer closeLog()
	slog.SetDefault(logger)

	if cfg.DevJWTSecret {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}

	cfg.Factory.Logger = logger
	app, err := factory.New(cfg.Factory)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Background loops stop with appCtx; Close waits for them
	appCtx, stopApp := context.WithCancel(context.Background())
	app.Start(appCtx)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Orchestrator: app.Orchestrator,
		Verifier:     app.Verifier,
		Storage:      app.Storage,
		Games:        app.Games,
		Gateway:      app.Gateway,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		Orchestrator: app.Orchestrator,
		Verifier:     app.Verifier,
		Storage:      app.Storage,
		Games:        app.Games,
		Gateway:      app.Gateway,
		StaticDir:    findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/ws", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, cfg.Server, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	stopApp()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := app.Close(closeCtx); err != nil {
		logger.Error("failed to close application", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	if exitCode != 0 {
		closeLog()
		os.Exit(exitCode)
	}
}

// newLogger writes JSON logs to stdout, and to a rotated file when one is configured
func newLogger(cfg LogConfig) (*slog.Logger, func()) {
	var out io.Writer = os.Stdout
	closeFn := func() {}

	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out = io.MultiWriter(os.Stdout, rotated)
		closeFn = func() { _ = rotated.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.Level,
	}))
	return logger, closeFn
}

// findStaticDir looks for the static files directory, returning "" when there is none
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
