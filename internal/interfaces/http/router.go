package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/reports"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	ClientUC       *usecase.ClientUseCase
	ProjectUC      *usecase.ProjectUseCase
	OrderUC        *usecase.OrderUseCase
	TicketUC       *usecase.TicketUseCase
	QuotationUC    *usecase.QuotationUseCase
	InvoiceUC      *billing.InvoiceUseCase
	PDFUC          *billing.PDFUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *reports.ReportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Organización del token (protegido; escritura solo admin)
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	org := protected.Group("/organization")
	org.Get("/", orgHandler.Get)
	org.Put("/", adminOnly, orgHandler.Update)
	org.Delete("/", adminOnly, orgHandler.Deactivate)

	// Clientes (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/search", clientHandler.Search)
	clients.Get("/statistics", clientHandler.Statistics)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Proyectos (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/search", projectHandler.Search)
	projects.Get("/statistics", projectHandler.Statistics)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Patch("/:id/status", projectHandler.ChangeStatus)
	projects.Delete("/:id", projectHandler.Delete)

	// Órdenes (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/statistics", orderHandler.Statistics)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Get("/:id/items", orderHandler.ListItems)
	orders.Post("/:id/items", orderHandler.AddItems)
	orders.Patch("/:id/status", orderHandler.ChangeStatus)
	orders.Delete("/:id", orderHandler.Delete)

	// Tickets de soporte (protegido)
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/search", ticketHandler.Search)
	tickets.Get("/statistics", ticketHandler.Statistics)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Patch("/:id/status", ticketHandler.ChangeStatus)
	tickets.Delete("/:id", ticketHandler.Delete)
	tickets.Post("/:id/messages", ticketHandler.AddMessage)
	tickets.Get("/:id/messages", ticketHandler.ListMessages)

	// Cotizaciones (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	pdfHandler := NewPDFHandler(deps.PDFUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/statistics", quotationHandler.Statistics)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Patch("/:id/status", quotationHandler.ChangeStatus)
	quotations.Post("/:id/send", quotationHandler.Send)
	quotations.Post("/:id/convert", managers, invoiceHandler.ConvertQuotation)
	quotations.Get("/:id/pdf", pdfHandler.DownloadQuotation)
	quotations.Delete("/:id", quotationHandler.Delete)

	// Facturas (protegido)
	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/statistics", invoiceHandler.Statistics)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.ChangeStatus)
	invoices.Get("/:id/pdf", pdfHandler.DownloadInvoice)
	invoices.Delete("/:id", managers, invoiceHandler.Delete)

	// Plantillas e historial de PDFs (protegido)
	pdf := protected.Group("/pdf")
	pdf.Post("/templates", managers, pdfHandler.CreateTemplate)
	pdf.Get("/templates", pdfHandler.ListTemplates)
	pdf.Get("/templates/:id", pdfHandler.GetTemplate)
	pdf.Put("/templates/:id", managers, pdfHandler.UpdateTemplate)
	pdf.Delete("/templates/:id", managers, pdfHandler.DeleteTemplate)
	pdf.Get("/records", pdfHandler.ListRecords)

	// Analítica (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	analyticsGroup.Get("/dashboard", analyticsHandler.Dashboard)
	analyticsGroup.Get("/revenue", analyticsHandler.Revenue)
	analyticsGroup.Get("/growth", analyticsHandler.Growth)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Post("/generate", reportHandler.Generate)
	reportsGroup.Get("/", reportHandler.List)
	reportsGroup.Post("/scheduled", managers, reportHandler.CreateScheduled)
	reportsGroup.Get("/scheduled", reportHandler.ListScheduled)
	reportsGroup.Get("/scheduled/:id", reportHandler.GetScheduled)
	reportsGroup.Put("/scheduled/:id", managers, reportHandler.UpdateScheduled)
	reportsGroup.Delete("/scheduled/:id", managers, reportHandler.DeleteScheduled)
	reportsGroup.Get("/:id", reportHandler.GetByID)
}
