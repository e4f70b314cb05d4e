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
	"github.com/rodrantho/storatrack/internal/application/auth"
	"github.com/rodrantho/storatrack/internal/application/authz"
	appbilling "github.com/rodrantho/storatrack/internal/application/billing"
	applifecycle "github.com/rodrantho/storatrack/internal/application/lifecycle"
	"github.com/rodrantho/storatrack/internal/application/usecase"
	"github.com/rodrantho/storatrack/internal/infrastructure/postgres"
	httpRouter "github.com/rodrantho/storatrack/internal/interfaces/http"
	"github.com/rodrantho/storatrack/pkg/config"
	"github.com/rodrantho/storatrack/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gateway := authz.NewGateway(log, auditRepo)

	companyUC := usecase.NewCompanyUseCase(gateway, companyRepo, deviceRepo)
	locationUC := usecase.NewLocationUseCase(gateway, locationRepo)
	deviceUC := usecase.NewDeviceUseCase(gateway, deviceRepo, companyRepo, locationRepo)
	transitionUC := applifecycle.NewTransitionUseCase(txRunner, gateway, deviceRepo, locationRepo, log)
	historyUC := applifecycle.NewHistoryUseCase(gateway, deviceRepo, movementRepo)
	costReportUC := appbilling.NewCostReportUseCase(gateway, companyRepo, deviceRepo, movementRepo)
	authUC := auth.NewAuthUseCase(gateway, userRepo, companyRepo, auditRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StoraTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		LocationUC:   locationUC,
		DeviceUC:     deviceUC,
		TransitionUC: transitionUC,
		HistoryUC:    historyUC,
		CostReportUC: costReportUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
