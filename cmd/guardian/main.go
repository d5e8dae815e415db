package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"guardian/internal/cleanup"
	"guardian/internal/feed"
	handlers "guardian/internal/handler"
	"guardian/internal/models"
	"guardian/pkg/config"
	"guardian/pkg/llm"
	"guardian/pkg/logger"
	"guardian/pkg/metrics"
	"guardian/pkg/middleware"
	"guardian/pkg/notification"
	"guardian/pkg/scheduler"
	"guardian/pkg/search"
	stores "guardian/pkg/storage"
	"guardian/pkg/util"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("guardian exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := util.CreateDatabaseInstance(&gorm.Config{}, cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Incident{}, &models.Alert{}); err != nil {
		return err
	}

	store, err := stores.New(cfg.Storage)
	if err != nil {
		return err
	}

	watcher := feed.NewWatcher(db, log)
	dispatcher := notification.NewDispatcher(nil, log) // link-only: the app opens the sms links
	assistant := llm.NewAssistant(llm.Config{APIKey: cfg.LLMApiKey, BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel})

	var engine *search.Engine
	if cfg.SearchEnabled {
		engine, err = search.Open(cfg.SearchPath)
		if err != nil {
			return err
		}
		defer engine.Close()
	}

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	secret := cfg.SessionSecret
	if secret == "" {
		secret = "guardian-dev-secret"
		log.Warn("SESSION_SECRET not set, using development default")
	}
	router.Use(sessions.Sessions("guardian_session", cookie.NewStore([]byte(secret))))

	if cfg.RateLimit != "" {
		limiter, err := middleware.RateLimiter(cfg.RateLimit, cfg.RedisAddr)
		if err != nil {
			return err
		}
		router.Use(limiter)
	}

	m := metrics.New("guardian")
	router.Use(m.Middleware())
	router.GET(cfg.MetricsPrefix, gin.WrapH(m.Handler()))

	handlers.NewHandlers(db, cfg, store, watcher, dispatcher, assistant, engine, log).Register(router)

	cron := scheduler.NewCron(nil)
	if cfg.SweepEnabled {
		sweeper := cleanup.NewOrphanSweeper(db, store, time.Duration(cfg.SweepGraceMin)*time.Minute, log)
		if _, err := cron.Add(cfg.SweepSchedule, sweeper); err != nil {
			return err
		}
	}
	cron.Start()
	defer cron.Stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("guardian listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
