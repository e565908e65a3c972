package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// Períodos válidos para date_trunc y su formato de etiqueta.
var periodFormats = map[string]string{
	"day":   "YYYY-MM-DD",
	"week":  "IYYY-IW",
	"month": "YYYY-MM",
	"year":  "YYYY",
}

// Tablas consultables por CreationSeries. Solo estos valores llegan al SQL.
var seriesTables = map[string]string{
	repository.SeriesClients:    "clients",
	repository.SeriesProjects:   "projects",
	repository.SeriesOrders:     "orders",
	repository.SeriesTickets:    "tickets",
	repository.SeriesInvoices:   "invoices",
	repository.SeriesQuotations: "quotations",
}

// AnalyticsRepo consultas de agregación temporal sobre las tablas de negocio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// RevenueByPeriod ingresos de facturas pagadas agrupados por período.
func (r *AnalyticsRepo) RevenueByPeriod(ctx context.Context, organizationID, period string, from, to time.Time) ([]repository.PeriodBucket, error) {
	format, ok := periodFormats[period]
	if !ok {
		return nil, fmt.Errorf("%w: periodo %q", domain.ErrInvalidInput, period)
	}
	query := fmt.Sprintf(`
		SELECT to_char(date_trunc('%s', issue_date), '%s') AS bucket,
		       COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE organization_id = $1 AND is_active = TRUE AND status = 'paid'
		  AND issue_date >= $2 AND issue_date <= $3
		GROUP BY bucket ORDER BY bucket`, period, format)
	rows, err := r.q.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("revenue by period: %w", err)
	}
	defer rows.Close()

	var buckets []repository.PeriodBucket
	for rows.Next() {
		var b repository.PeriodBucket
		if err := rows.Scan(&b.Period, &b.Count, &b.Value); err != nil {
			return nil, fmt.Errorf("scan revenue bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// CreationSeries filas creadas por período para una entidad de la whitelist.
func (r *AnalyticsRepo) CreationSeries(ctx context.Context, organizationID, series, period string, from, to time.Time) ([]repository.PeriodBucket, error) {
	table, ok := seriesTables[series]
	if !ok {
		return nil, fmt.Errorf("%w: serie %q", domain.ErrInvalidInput, series)
	}
	format, ok := periodFormats[period]
	if !ok {
		return nil, fmt.Errorf("%w: periodo %q", domain.ErrInvalidInput, period)
	}
	query := fmt.Sprintf(`
		SELECT to_char(date_trunc('%s', created_at), '%s') AS bucket, COUNT(*)
		FROM %s
		WHERE organization_id = $1 AND is_active = TRUE
		  AND created_at >= $2 AND created_at <= $3
		GROUP BY bucket ORDER BY bucket`, period, format, table)
	rows, err := r.q.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("creation series %s: %w", series, err)
	}
	defer rows.Close()

	var buckets []repository.PeriodBucket
	for rows.Next() {
		var b repository.PeriodBucket
		if err := rows.Scan(&b.Period, &b.Count); err != nil {
			return nil, fmt.Errorf("scan creation bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
