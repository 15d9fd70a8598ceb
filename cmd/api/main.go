package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/medtrack/medtrack-api/internal/application/auth"
	appinventory "github.com/medtrack/medtrack-api/internal/application/inventory"
	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/application/usecase"
	infrapdf "github.com/medtrack/medtrack-api/internal/infrastructure/pdf"
	"github.com/medtrack/medtrack-api/internal/infrastructure/postgres"
	infrasmtp "github.com/medtrack/medtrack-api/internal/infrastructure/smtp"
	httpRouter "github.com/medtrack/medtrack-api/internal/interfaces/http"
	"github.com/medtrack/medtrack-api/internal/worker"
	"github.com/medtrack/medtrack-api/pkg/config"
	"github.com/medtrack/medtrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	deptRepo := postgres.NewDepartmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	vendorItemRepo := postgres.NewVendorItemRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	reqRepo := postgres.NewRequisitionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis + notificaciones asíncronas. Sin SMTP configurado los eventos se
	// consumen igual y solo se loguean.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var notifier requisition.Notifier
	var workers *sync.WaitGroup
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, notificaciones deshabilitadas")
	} else {
		notifier = worker.NewDispatcher(rdb, log)
		var mailer worker.Mailer
		if cfg.SMTP.Enabled() {
			mailer = infrasmtp.NewMailer(cfg.SMTP)
		}
		workers = worker.StartWorkerPool(ctx, rdb, mailer, cfg.Redis.Workers, log)
	}

	var pdfGen requisition.DeliveryNoteGenerator
	if cfg.Notes.Dir != "" {
		if err := os.MkdirAll(cfg.Notes.Dir, 0o755); err != nil {
			log.Warn().Err(err).Str("dir", cfg.Notes.Dir).Msg("no se pudo crear el directorio de remitos")
		} else {
			pdfGen = infrapdf.NewMarotoDeliveryNoteGenerator()
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, deptRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	deptUC := usecase.NewDepartmentUseCase(deptRepo, orgRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo, itemRepo, vendorItemRepo)
	inventoryQueryUC := usecase.NewInventoryQueryUseCase(invRepo, movRepo, alertRepo, itemRepo, storeRepo)
	registerMovementUC := appinventory.NewRegisterMovementUseCase(txRunner, itemRepo, storeRepo)
	workflowUC := requisition.NewWorkflowUseCase(
		txRunner, reqRepo, invRepo, itemRepo, storeRepo, deptRepo, userRepo,
		notifier, pdfGen, cfg.Notes.Dir,
	)

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
		Title:    "MedTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		OrganizationUC:   orgUC,
		DepartmentUC:     deptUC,
		ItemUC:           itemUC,
		StoreUC:          storeUC,
		InventoryQueryUC: inventoryQueryUC,
		RegisterMovement: registerMovementUC,
		WorkflowUC:       workflowUC,
		AuditRepo:        auditRepo,
		JWTSecret:        cfg.JWT.Secret,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Detener los workers y esperar a que terminen el evento en curso.
	cancel()
	if workers != nil {
		workers.Wait()
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("cierre de Redis")
	}

	log.Info().Msg("aplicación detenida")
}
