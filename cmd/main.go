// Package main wires the HTTP server for the CLA acceptance service.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pmn/cla-assistant/config"
	"github.com/pmn/cla-assistant/internal/gist"
	"github.com/pmn/cla-assistant/internal/github"
	"github.com/pmn/cla-assistant/internal/reposervice"
	"github.com/pmn/cla-assistant/internal/repository"
	"github.com/pmn/cla-assistant/internal/transport/http/middleware"
	"github.com/pmn/cla-assistant/internal/transport/http/server/handlers-fiber"
	"github.com/pmn/cla-assistant/internal/usecase"
	"github.com/pmn/cla-assistant/internal/usecase/domain"
	"github.com/pmn/cla-assistant/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	httpClient := &http.Client{}

	var resolver domain.GistResolver = gist.NewResolver(log, httpClient, gist.Options{
		BaseURL:   cfg.GitHub.GistBaseURL(),
		UserAgent: cfg.GitHub.UserAgent,
		Timeout:   cfg.GitHub.FetchTimeout,
		RateLimit: cfg.GitHub.RateLimit,
		RateBurst: cfg.GitHub.RateBurst,
	})
	if cfg.Cache.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer func() {
			_ = rdb.Close()
		}()
		resolver = gist.NewCachedResolver(log, resolver, rdb, cfg.Cache.TTL)
		log.Infow("gist cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	gh, err := github.New(log, httpClient, github.Options{
		BaseURL:       cfg.GitHub.APIURL,
		UserAgent:     cfg.GitHub.UserAgent,
		StatusContext: cfg.GitHub.StatusContext,
		TargetURL:     cfg.GitHub.StatusTargetURL,
	})
	if err != nil {
		log.Errorw("github client initialization error", "error", err)
		return
	}

	repos := reposervice.New(log, repo, gh)

	timeout := cfg.HTTP.RequestTimeout
	uc := usecase.New(log, repo, repos, resolver, gh, timeout,
		domain.WithMaxParallelLookups(cfg.Workflow.MaxParallelLookups),
	)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		if err := repo.Ping(c.Context()); err != nil {
			log.Warnw("health check failed", "error", err)
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	h.Register(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
