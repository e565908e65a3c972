package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Entidades cuyo timeline de creación participa en la analítica de crecimiento.
// Cada valor mapea a una tabla concreta en el repositorio (whitelist).
const (
	SeriesClients    = "clients"
	SeriesProjects   = "projects"
	SeriesOrders     = "orders"
	SeriesTickets    = "tickets"
	SeriesInvoices   = "invoices"
	SeriesQuotations = "quotations"
)

// PeriodBucket un punto de una serie temporal agrupada por período.
// Period usa la clave natural del truncado: "2024-03-15", "2024-03", "2024".
type PeriodBucket struct {
	Period string
	Count  int
	Value  decimal.Decimal
}

// AnalyticsRepository consultas read-only de agregación temporal.
// Los agregados por entidad (counts por estado, totales) viven en los
// repositorios de cada entidad; aquí solo series por período.
type AnalyticsRepository interface {
	// RevenueByPeriod agrupa total_amount de facturas pagadas por período
	// (day|week|month|year) usando la fecha de emisión.
	RevenueByPeriod(ctx context.Context, organizationID, period string, from, to time.Time) ([]PeriodBucket, error)
	// CreationSeries cuenta filas creadas por período para una de las
	// entidades Series* (timestamp de creación truncado al límite del período).
	CreationSeries(ctx context.Context, organizationID, series, period string, from, to time.Time) ([]PeriodBucket, error)
}
