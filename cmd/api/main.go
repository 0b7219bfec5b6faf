package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-ledger/docs"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/application/production"
	"github.com/jhoicas/inventario-ledger/internal/application/recipe"
	"github.com/jhoicas/inventario-ledger/internal/application/sales"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// @title           Inventario Ledger API
// @version         1.0
// @description     Ledger transaccional de stock: productos, ingredientes, recetas, producción y ventas.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer.
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:       cfg.OTel.Enabled,
		ServiceName:   cfg.OTel.ServiceName,
		Endpoint:      cfg.OTel.Endpoint,
		Insecure:      cfg.OTel.Insecure,
		SamplingRatio: cfg.OTel.SamplingRatio,
	}, log.Component("telemetry"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cerrar trazas")
		}
	}()

	reporter := telemetry.MultiReporter{
		telemetry.NewLogReporter(log.Component("fault")),
		telemetry.NewTraceReporter(tp.Tracer("inventario-ledger")),
	}

	var (
		txRunner repository.TxRunner
		reader   repository.UnitOfWork
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		txRunner, reader = store, store
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.Store.MigrationsAuto {
			runMigrations(cfg.DB.ConnectionString(), log)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, reader = postgres.NewTxRunner(pool), postgres.NewUnitOfWork(pool)
	}

	deps := buildDeps(txRunner, reader, reporter)
	deps.JWTSecret = cfg.JWT.Secret

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	httpRouter.Docs(app, docs.SwaggerJSON)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildDeps arma los casos de uso sobre el store elegido. reader son los repositorios fuera de transacción.
func buildDeps(txRunner repository.TxRunner, reader repository.UnitOfWork, reporter ports.ErrorReporter) httpRouter.RouterDeps {
	ledger := inventory.NewStockLedger(txRunner, reader, reporter)
	return httpRouter.RouterDeps{
		CompanyUC:    usecase.NewCompanyUseCase(reader.Companies()),
		ProductUC:    usecase.NewProductUseCase(reader.Products()),
		IngredientUC: usecase.NewIngredientUseCase(reader.Ingredients()),
		Ledger:       ledger,
		Replenish:    inventory.NewReplenishmentUseCase(reader),
		RecipeUC:     recipe.NewRecipeUseCase(reader),
		ProduceUC:    production.NewProduceUseCase(txRunner, reader, ledger, reporter),
		SaleUC:       sales.NewSaleUseCase(txRunner, reader, ledger, reporter),
		Companies:    reader.Companies(),
	}
}

func runMigrations(databaseURL string, log *logger.Logger) {
	m, err := postgres.NewMigrator(databaseURL, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
}
