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

	appanalytics "github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/reports"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Gestion-api/internal/interfaces/http"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "api",
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

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	pdfRepo := postgres.NewPDFRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	organizationUC := usecase.NewOrganizationUseCase(orgRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, clientRepo, orgRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, clientRepo, txRunner)
	ticketUC := usecase.NewTicketUseCase(ticketRepo, clientRepo)
	quotationUC := usecase.NewQuotationUseCase(quotationRepo, clientRepo, txRunner)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, quotationRepo, clientRepo, txRunner)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(
		invoiceRepo, quotationRepo, orgRepo, clientRepo, pdfRepo,
		pdfGenerator, pdfGenerator,
	)

	dashboardUC := appanalytics.NewDashboardUseCase(
		clientRepo, projectRepo, orderRepo, ticketRepo, invoiceRepo, analyticsRepo,
	)
	reportUC := reports.NewReportUseCase(reportRepo, dashboardUC, clientRepo, projectRepo, ticketRepo)

	// Scheduler: reportes programados + barrido de facturas vencidas.
	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	if cfg.Scheduler.Enabled {
		sched := reports.NewScheduler(
			reportRepo, invoiceRepo, reportUC,
			time.Duration(cfg.Scheduler.IntervalMinutes)*time.Minute, log,
		)
		go sched.Run(schedulerCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: organizationUC,
		ClientUC:       clientUC,
		ProjectUC:      projectUC,
		OrderUC:        orderUC,
		TicketUC:       ticketUC,
		QuotationUC:    quotationUC,
		InvoiceUC:      invoiceUC,
		PDFUC:          pdfUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
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
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
