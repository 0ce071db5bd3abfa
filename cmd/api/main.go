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
	"github.com/tu-usuario/facturation-pro/internal/application/assistant"
	appbilling "github.com/tu-usuario/facturation-pro/internal/application/billing"
	"github.com/tu-usuario/facturation-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/facturation-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/facturation-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/facturation-pro/internal/interfaces/http"
	"github.com/tu-usuario/facturation-pro/pkg/config"
	"github.com/tu-usuario/facturation-pro/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconciler := appbilling.NewStatusReconciler(txRunner)

	clientUC := usecase.NewClientUseCase(clientRepo, invoiceRepo)
	productUC := usecase.NewProductUseCase(productRepo, invoiceRepo, settingsRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	invoiceUC := appbilling.NewInvoiceUseCase(txRunner, invoiceRepo, clientRepo, productRepo, paymentRepo, reconciler)
	paymentUC := appbilling.NewPaymentUseCase(paymentRepo, invoiceRepo, reconciler)

	// PDF: representación imprimible de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := appbilling.NewPDFUseCase(invoiceRepo, clientRepo, settingsRepo, pdfGenerator)

	assistantUC := assistant.NewUseCase(clientUC, productUC, invoiceUC)

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
		Title:    "Facturation Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:    clientUC,
		ProductUC:   productUC,
		SettingsUC:  settingsUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		PDFUC:       pdfUC,
		AssistantUC: assistantUC,
		JWTSecret:   cfg.JWT.Secret,
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
