package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/playcall/config"
	"github.com/padraicbc/playcall/game"
	"github.com/padraicbc/playcall/handlers"
	applog "github.com/padraicbc/playcall/logger"
	"github.com/padraicbc/playcall/metrics"
	mw "github.com/padraicbc/playcall/middleware"
	"github.com/padraicbc/playcall/notify"
	"github.com/padraicbc/playcall/store"
	"github.com/padraicbc/playcall/web"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(applog.Options{Debug: cfg.Debug, Level: cfg.LogLevel, Name: "server"})
	if err != nil {
		panic(err)
	}
	if err := cfg.ValidateServer(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store failed", zap.Error(err))
	}
	defer func() { _ = closeSlot() }()

	m := metrics.New()
	hub := notify.NewHub(logger, m.WSClients)
	go hub.Run(ctx)

	shell := game.NewShell(ctx, store.New(slot, cfg.StoreKey, logger), game.Options{
		AckDuration: cfg.AckDuration,
		Notifier:    hub,
		Log:         logger,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("load templates failed", zap.Error(err))
	}

	validate, err := handlers.NewValidator()
	if err != nil {
		logger.Fatal("register validations failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = validate
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Debug("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(mw.Metrics(m))

	handlers.New(shell, hub, m, logger).Register(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	logger.Info("starting server", zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
