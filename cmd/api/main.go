package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Insumos-api/internal/application/auth"
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Insumos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Insumos-api/internal/interfaces/http"
	"github.com/jhoicas/Insumos-api/migrations"
	"github.com/jhoicas/Insumos-api/pkg/config"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, txRunner, ping, closeStorage := openStorage(ctx, cfg, log)
	defer closeStorage()

	alertEngine := inventory.NewAlertEngine()
	ledger := inventory.NewLedger(alertEngine, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Company)

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log, cfg.App.IsProduction()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Insumos Mezcal API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Lines:          inventory.NewLineUseCase(repos, txRunner, ledger, alertEngine, xlsx.NewInventoryExporter()),
		ApplyMovement:  inventory.NewApplyMovementUseCase(txRunner, ledger),
		Alerts:         inventory.NewAlertUseCase(repos, txRunner),
		Receptions:     reception.NewUseCase(repos, txRunner, ledger, pdfGenerator, log),
		Deliveries:     delivery.NewUseCase(repos, txRunner, ledger, pdfGenerator, log),
		Clients:        catalog.NewClientUseCase(repos.Clients),
		ClientConfigs:  catalog.NewClientConfigUseCase(repos, txRunner),
		Brands:         catalog.NewBrandUseCase(repos.Brands, repos.Clients),
		Suppliers:      catalog.NewSupplierUseCase(repos.Suppliers),
		Varieties:      catalog.NewVarietyUseCase(repos.Varieties),
		Presentations:  catalog.NewPresentationUseCase(repos.Presentations),
		Categories:     catalog.NewCategoryUseCase(repos.Categories),
		ProductionLots: catalog.NewProductionLotUseCase(repos),
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
		Ping:           ping,
	})

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

// openStorage abre el almacenamiento elegido en STORAGE_DRIVER. Con memory no hay base de
// datos: sirve para probar la API localmente y los datos se pierden al detenerla.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Repos, inventory.TxRunner, func(context.Context) error, func()) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos no se conservan al reiniciar")
		store := memory.NewStore()
		res, err := catalog.NewSeeder(store.Repos()).Seed(ctx, catalog.DefaultSeed())
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogos base")
		}
		log.Info().Int("created", res.Created).Msg("catálogos base cargados")
		return store.Repos(), store, nil, func() {}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}

	// Fuera de producción el esquema se aplica al arrancar; en producción se usa cmd/migrate.
	if !cfg.App.IsProduction() {
		applied, err := migrations.Apply(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
	}
	return postgres.NewRepos(pool), postgres.NewTxRunner(pool), pool.Ping, pool.Close
}
