package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/internal/config"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/providers"
	"github.com/ahashem12/LaunchpadX-sub001/internal/logger"
	"github.com/ahashem12/LaunchpadX-sub001/internal/present/rest"
	authmw "github.com/ahashem12/LaunchpadX-sub001/internal/present/rest/middleware"
	"github.com/ahashem12/LaunchpadX-sub001/internal/service"
	"github.com/ahashem12/LaunchpadX-sub001/internal/tracing"
	"github.com/ahashem12/LaunchpadX-sub001/internal/usecase"
)

var version = "dev"

func main() {
	conf, err := config.Load(os.Getenv("LPX_CONFIG"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(conf.Logging.Level, conf.Logging.Format)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, "lpx", version, conf.Server.TraceEndpoint, conf.Server.EnableTrace)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	var repos providers.Repositories
	var rdb *redis.Client

	if conf.Site.MockData {
		log.Info("running with in-memory mock data")
		repos = providers.NewMemoryRepositories()

		mr, err := miniredis.Run()
		if err != nil {
			log.Fatal("failed to start in-process redis", zap.Error(err))
		}
		defer mr.Close()
		rdb = database.NewRedis(mr.Addr(), "", 0)
	} else {
		db, err := providers.NewDatabase(conf.Server, log)
		if err != nil {
			log.Fatal("failed to set up database", zap.Error(err))
		}
		repos = providers.NewPostgresRepositories(db, providers.NewMemcache(conf.Server))
		rdb = database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	}
	defer rdb.Close()

	signalService := service.NewSignalService(rdb)
	authService := service.NewAuthService(conf.Auth.JWTSecret, conf.Auth.Audience, conf.Auth.CacheTTL)
	authMiddleware := authmw.NewAuthMiddleware(authService)

	handler := rest.NewHandler(
		conf.Site,
		usecase.NewProjectUsecase(repos.Projects, repos.Members),
		usecase.NewMemberUsecase(repos.Members, repos.Projects),
		usecase.NewRoleUsecase(repos.Roles, repos.Applications, repos.Projects, repos.Members, signalService),
		usecase.NewNextStepUsecase(repos.NextSteps, repos.Projects, repos.Members),
		usecase.NewProfileUsecase(repos.Profiles),
		usecase.NewEcosystemUsecase(repos.Ecosystem),
		signalService,
	)

	e := echo.New()
	e.HideBanner = true
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("lpx", otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/healthz"
		})))
	}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
			} else {
				log.Info("request", fields...)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if len(conf.Server.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.AllowOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(authmw.Metrics)
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e, authMiddleware.RequireAuth)

	go func() {
		log.Info("listening", zap.String("addr", conf.Server.ListenAddr), zap.String("version", version))
		if err := e.Start(conf.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}
