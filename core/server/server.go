package server

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

	"meetsync/core/cache"
	"meetsync/core/config"
	"meetsync/core/constants"
	"meetsync/core/llm"
	"meetsync/core/logger"
	"meetsync/core/middleware"
	"meetsync/modules/auth"
	"meetsync/modules/schedule"
	"meetsync/modules/schedule/service"
	"meetsync/modules/schedule/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoswagger "github.com/swaggo/echo-swagger"
)

// Run loads config and starts the process in the selected mode: "api" serves
// the HTTP API, "worker" consumes async scheduling tasks.
func Run() error {
	mode := flag.String("mode", "api", "run mode: api or worker")
	flag.Parse()

	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Get()
	logger.Init(cfg.Logger.Level, cfg.Logger.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisCache, err := cache.New(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	extractor, err := buildExtractor(cfg, redisCache)
	if err != nil {
		return err
	}

	switch *mode {
	case "worker":
		handler := worker.NewHandler(
			service.NewScheduleService(extractor),
			redisCache,
			time.Duration(cfg.Redis.ResultTTLMinutes)*time.Minute,
		)
		return worker.Run(ctx, handler)
	case "api":
		return runAPI(ctx, cfg, extractor, redisCache)
	default:
		return fmt.Errorf("unknown mode %q, expected api or worker", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, extractor llm.Extractor, redisCache cache.Cache) error {
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(echomw.CORS())

	mw := middleware.NewMiddleware()
	auth.Init(e)
	schedule.Init(e, extractor, asynqClient, redisCache, mw)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoswagger.WrapHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server:Run:Start", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server:Run:Stopped")
	return nil
}

// buildExtractor wires the Ollama client behind the redis extraction cache.
func buildExtractor(cfg *config.Config, c cache.Cache) (llm.Extractor, error) {
	client, err := llm.NewClient(llm.Config{
		ServerURL: cfg.LLM.ServerURL,
		Model:     cfg.LLM.Model,
		Timeout:   time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return llm.NewCachedExtractor(client, c, time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute), nil
}

// requestLogger logs one line per request through the shared logger.
func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
				logger.Warn("Server:Request", args...)
			} else {
				logger.Info("Server:Request", args...)
			}
			return nil
		},
	})
}
