// Package analytics contiene los casos de uso del dashboard multi-entidad y
// las series temporales de ingresos y crecimiento.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// DashboardUseCase agrega las estadísticas de las cinco entidades del negocio
// y expone las series temporales del AnalyticsRepository.
type DashboardUseCase struct {
	clients   repository.ClientRepository
	projects  repository.ProjectRepository
	orders    repository.OrderRepository
	tickets   repository.TicketRepository
	invoices  repository.InvoiceRepository
	analytics repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	clients repository.ClientRepository,
	projects repository.ProjectRepository,
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	invoices repository.InvoiceRepository,
	analytics repository.AnalyticsRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		clients:   clients,
		projects:  projects,
		orders:    orders,
		tickets:   tickets,
		invoices:  invoices,
		analytics: analytics,
	}
}

// GetDashboard construye el resumen del tenant.
//
// Cinco llamadas en paralelo, una por entidad. Si cualquiera falla, la
// operación entera devuelve error: nunca totales parciales silenciosos.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, organizationID string) (*dto.DashboardResponse, error) {
	type clientsResult struct {
		stats *repository.ClientStats
		err   error
	}
	type projectsResult struct {
		stats *repository.ProjectStats
		err   error
	}
	type ordersResult struct {
		stats *repository.OrderStats
		err   error
	}
	type ticketsResult struct {
		stats *repository.TicketStats
		err   error
	}
	type invoicesResult struct {
		stats *repository.InvoiceStats
		err   error
	}

	clientsCh := make(chan clientsResult, 1)
	projectsCh := make(chan projectsResult, 1)
	ordersCh := make(chan ordersResult, 1)
	ticketsCh := make(chan ticketsResult, 1)
	invoicesCh := make(chan invoicesResult, 1)

	go func() {
		s, err := uc.clients.Statistics(ctx, organizationID)
		clientsCh <- clientsResult{s, err}
	}()
	go func() {
		s, err := uc.projects.Statistics(ctx, organizationID)
		projectsCh <- projectsResult{s, err}
	}()
	go func() {
		s, err := uc.orders.Statistics(ctx, organizationID)
		ordersCh <- ordersResult{s, err}
	}()
	go func() {
		s, err := uc.tickets.Statistics(ctx, organizationID)
		ticketsCh <- ticketsResult{s, err}
	}()
	go func() {
		s, err := uc.invoices.Statistics(ctx, organizationID)
		invoicesCh <- invoicesResult{s, err}
	}()

	cr := <-clientsCh
	pr := <-projectsCh
	or := <-ordersCh
	tr := <-ticketsCh
	ir := <-invoicesCh

	if cr.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cr.err)
	}
	if pr.err != nil {
		return nil, fmt.Errorf("dashboard: proyectos: %w", pr.err)
	}
	if or.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", or.err)
	}
	if tr.err != nil {
		return nil, fmt.Errorf("dashboard: tickets: %w", tr.err)
	}
	if ir.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", ir.err)
	}

	return &dto.DashboardResponse{
		Clients: dto.ClientStatsResponse{
			Total:        cr.stats.Total,
			NewThisMonth: cr.stats.NewThisMonth,
			ByIndustry:   cr.stats.ByIndustry,
		},
		Projects: dto.ProjectStatsResponse{
			Total:    pr.stats.Total,
			ByStatus: pr.stats.ByStatus,
		},
		Orders: dto.OrderStatsResponse{
			Total:      or.stats.Total,
			ByStatus:   or.stats.ByStatus,
			GrandTotal: or.stats.GrandTotal,
		},
		Tickets: dto.TicketStatsResponse{
			Total:      tr.stats.Total,
			ByStatus:   tr.stats.ByStatus,
			ByPriority: tr.stats.ByPriority,
		},
		Invoices: dto.InvoiceStatsResponse{
			Total:       ir.stats.Total,
			ByStatus:    ir.stats.ByStatus,
			Revenue:     ir.stats.Revenue,
			Outstanding: ir.stats.Outstanding,
		},
	}, nil
}

// normalizeRange aplica defaults: último año hasta ahora.
func normalizeRange(from, to time.Time) (time.Time, time.Time) {
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}
	return from, to
}

// GetRevenueSeries serie de ingresos de facturas pagadas por período.
func (uc *DashboardUseCase) GetRevenueSeries(ctx context.Context, organizationID, period string, from, to time.Time) (*dto.RevenueSeriesResponse, error) {
	from, to = normalizeRange(from, to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	buckets, err := uc.analytics.RevenueByPeriod(ctx, organizationID, period, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.RevenueSeriesResponse{
		Period:  period,
		Buckets: toBucketResponses(buckets),
	}, nil
}

// Entidades del timeline de crecimiento, en orden estable de salida.
var growthSeries = []string{
	repository.SeriesClients,
	repository.SeriesProjects,
	repository.SeriesOrders,
	repository.SeriesTickets,
	repository.SeriesInvoices,
	repository.SeriesQuotations,
}

// GetGrowthSeries timeline de altas por entidad, con las consultas en
// paralelo y un combinado que colapsa los períodos de todas las entidades.
func (uc *DashboardUseCase) GetGrowthSeries(ctx context.Context, organizationID, period string, from, to time.Time) (*dto.GrowthSeriesResponse, error) {
	from, to = normalizeRange(from, to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}

	type seriesResult struct {
		name    string
		buckets []repository.PeriodBucket
		err     error
	}
	ch := make(chan seriesResult, len(growthSeries))
	for _, name := range growthSeries {
		go func(name string) {
			buckets, err := uc.analytics.CreationSeries(ctx, organizationID, name, period, from, to)
			ch <- seriesResult{name, buckets, err}
		}(name)
	}

	byEntity := make(map[string][]dto.PeriodBucketResponse, len(growthSeries))
	combined := map[string]int{}
	for range growthSeries {
		res := <-ch
		if res.err != nil {
			return nil, fmt.Errorf("growth: serie %s: %w", res.name, res.err)
		}
		byEntity[res.name] = toBucketResponses(res.buckets)
		for _, b := range res.buckets {
			combined[b.Period] += b.Count
		}
	}

	periods := make([]string, 0, len(combined))
	for p := range combined {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	combinedBuckets := make([]dto.PeriodBucketResponse, 0, len(periods))
	for _, p := range periods {
		combinedBuckets = append(combinedBuckets, dto.PeriodBucketResponse{
			Period: p,
			Count:  combined[p],
		})
	}

	return &dto.GrowthSeriesResponse{
		Period:   period,
		ByEntity: byEntity,
		Combined: combinedBuckets,
	}, nil
}

func toBucketResponses(buckets []repository.PeriodBucket) []dto.PeriodBucketResponse {
	out := make([]dto.PeriodBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.PeriodBucketResponse{
			Period: b.Period,
			Count:  b.Count,
			Value:  b.Value,
		})
	}
	return out
}
