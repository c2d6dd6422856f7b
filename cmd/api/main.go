package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-dashboard/internal/application/auth"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/redisstore"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/Inventario-dashboard/internal/interfaces/http"
	"github.com/jhoicas/Inventario-dashboard/pkg/config"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Str("notifier_store", cfg.Notifier.Store).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, history, closeStores, err := openStores(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento del notificador")
	}
	defer closeStores()

	table := access.DefaultTable()
	client := upstream.NewClient(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		PageSize: cfg.Upstream.PageSize,
	})

	loc, _ := cfg.Notifier.Location() // validado en config.Load
	feed := notifier.NewFeed(cfg.Notifier.FeedSize)
	sink := notifier.MultiSink{feed, notifier.NewHistorySink(history, log.Zerolog())}
	manager := notifier.NewManager(client, store, sink, log.Zerolog(), notifier.ManagerConfig{
		Notifier: notifier.Config{
			Interval:   cfg.Notifier.PollInterval,
			StorageKey: cfg.Notifier.StorageKey,
			Location:   loc,
		},
		IdleTimeout: cfg.Notifier.IdleTimeout,
	})

	sessions := auth.NewSessionProvider(client, auth.SessionConfig{
		JWTSecret:     cfg.JWT.Secret,
		CacheTTL:      cfg.Session.CacheTTL,
		LoadingBudget: cfg.Session.LoadingBudget,
		LookupTimeout: cfg.Upstream.Timeout,
	}, log.Zerolog())
	authUC := auth.NewUseCase(client, sessions, manager, feed, table, log.Zerolog())
	stockUC := stock.NewUseCase(client, infrapdf.NewMarotoReportGenerator(), history, cfg.App.PublicURL)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dashboard Gateway API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Table:     table,
		Sessions:  sessions,
		Notifiers: manager,
		Resetter:  manager,
		AuthUC:    authUC,
		StockUC:   stockUC,
		Feed:      feed,
		History:   history,
		Log:       log.Zerolog(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		return manager.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		manager.Shutdown()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor finalizado con error")
	}
	log.Info().Msg("aplicación detenida")
}

// openStores selecciona el almacenamiento del conjunto notificado y del historial
// según NOTIFIER_STORE. El historial solo es persistente con postgres.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.KeyValueStore, repository.AlertRepository, func(), error) {
	switch cfg.Notifier.Store {
	case "redis":
		client, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("notificador sobre Redis")
		return redisstore.NewKVStore(client, "", 0), memory.NewAlertRepository(0), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.Info().Msg("notificador sobre PostgreSQL")
		return postgres.NewKVStore(pool), postgres.NewAlertRepository(pool), pool.Close, nil
	default:
		return memory.NewKVStore(), memory.NewAlertRepository(0), func() {}, nil
	}
}
