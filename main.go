package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/api"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/config"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/render"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/storage"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/taskclient"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("session store: %v", err)
	}
	defer closeStore()

	renderer, err := render.New(cfg.DateFormat)
	if err != nil {
		logger.Fatalf("templates: %v", err)
	}

	client := taskclient.New(cfg.TasksAPI.URL, cfg.TasksAPI.Token, cfg.TasksAPI.Timeout.Duration(), logger)
	ctl := board.NewController(client, logger)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	api.Register(e, ctl, sessions, logger)

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("listening")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration())
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}

func newSessionStore(ctx context.Context, cfg config.Config, logger *log.Logger) (api.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		opts, err := cfg.Redis.Options()
		if err != nil {
			return nil, nil, err
		}
		rc := redis.NewClient(opts)
		if err := rc.Ping(ctx).Err(); err != nil {
			_ = rc.Close()
			return nil, nil, err
		}
		logger.WithField("addr", opts.Addr).Info("using redis session store")
		return storage.NewRedisStore(rc, cfg.Session.TTL.Duration()), func() { _ = rc.Close() }, nil
	default:
		mem := storage.NewMemoryStore(cfg.Session.TTL.Duration())
		go mem.RunSweeper(ctx, cfg.Session.SweepInterval.Duration(), logger)
		return mem, func() {}, nil
	}
}
