package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrg = "11111111-1111-4111-8111-111111111111"

// Stubs por embedding: solo Statistics / las consultas de series se
// sobreescriben; cualquier otro método embebido panica si se llama.

type stubClientRepo struct {
	repository.ClientRepository
	stats *repository.ClientStats
	err   error
}

func (s stubClientRepo) Statistics(context.Context, string) (*repository.ClientStats, error) {
	return s.stats, s.err
}

type stubProjectRepo struct {
	repository.ProjectRepository
	stats *repository.ProjectStats
	err   error
}

func (s stubProjectRepo) Statistics(context.Context, string) (*repository.ProjectStats, error) {
	return s.stats, s.err
}

type stubOrderRepo struct {
	repository.OrderRepository
	stats *repository.OrderStats
	err   error
}

func (s stubOrderRepo) Statistics(context.Context, string) (*repository.OrderStats, error) {
	return s.stats, s.err
}

type stubTicketRepo struct {
	repository.TicketRepository
	stats *repository.TicketStats
	err   error
}

func (s stubTicketRepo) Statistics(context.Context, string) (*repository.TicketStats, error) {
	return s.stats, s.err
}

type stubInvoiceRepo struct {
	repository.InvoiceRepository
	stats *repository.InvoiceStats
	err   error
}

func (s stubInvoiceRepo) Statistics(context.Context, string) (*repository.InvoiceStats, error) {
	return s.stats, s.err
}

type stubAnalyticsRepo struct {
	revenue  []repository.PeriodBucket
	creation map[string][]repository.PeriodBucket
	err      error
}

func (s stubAnalyticsRepo) RevenueByPeriod(_ context.Context, _, _ string, _, _ time.Time) ([]repository.PeriodBucket, error) {
	return s.revenue, s.err
}

func (s stubAnalyticsRepo) CreationSeries(_ context.Context, _, series, _ string, _, _ time.Time) ([]repository.PeriodBucket, error) {
	return s.creation[series], s.err
}

func healthyDashboardUC() *DashboardUseCase {
	return NewDashboardUseCase(
		stubClientRepo{stats: &repository.ClientStats{Total: 12, NewThisMonth: 3}},
		stubProjectRepo{stats: &repository.ProjectStats{Total: 5, ByStatus: map[string]int{"active": 4}}},
		stubOrderRepo{stats: &repository.OrderStats{Total: 7, GrandTotal: decimal.RequireFromString("15000")}},
		stubTicketRepo{stats: &repository.TicketStats{Total: 9, ByStatus: map[string]int{"open": 2}}},
		stubInvoiceRepo{stats: &repository.InvoiceStats{Total: 4, Revenue: decimal.RequireFromString("9000")}},
		stubAnalyticsRepo{},
	)
}

// ─────────────────────────────────────────────
// GetDashboard
// ─────────────────────────────────────────────

func TestGetDashboard_AgregaLasCincoEntidades(t *testing.T) {
	uc := healthyDashboardUC()

	resp, err := uc.GetDashboard(context.Background(), testOrg)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 12, resp.Clients.Total)
	assert.Equal(t, 3, resp.Clients.NewThisMonth)
	assert.Equal(t, 5, resp.Projects.Total)
	assert.Equal(t, 7, resp.Orders.Total)
	assert.True(t, resp.Orders.GrandTotal.Equal(decimal.RequireFromString("15000")))
	assert.Equal(t, 9, resp.Tickets.Total)
	assert.True(t, resp.Invoices.Revenue.Equal(decimal.RequireFromString("9000")))
}

func TestGetDashboard_UnaFuenteFallaTodoFalla(t *testing.T) {
	uc := NewDashboardUseCase(
		stubClientRepo{stats: &repository.ClientStats{Total: 12}},
		stubProjectRepo{stats: &repository.ProjectStats{Total: 5}},
		stubOrderRepo{err: errors.New("timeout")},
		stubTicketRepo{stats: &repository.TicketStats{Total: 9}},
		stubInvoiceRepo{stats: &repository.InvoiceStats{Total: 4}},
		stubAnalyticsRepo{},
	)

	resp, err := uc.GetDashboard(context.Background(), testOrg)

	assert.Nil(t, resp, "nunca totales parciales")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "órdenes")
	assert.Contains(t, err.Error(), "timeout")
}

// ─────────────────────────────────────────────
// Series temporales
// ─────────────────────────────────────────────

func TestGetRevenueSeries_DevuelveBuckets(t *testing.T) {
	uc := NewDashboardUseCase(
		stubClientRepo{}, stubProjectRepo{}, stubOrderRepo{}, stubTicketRepo{}, stubInvoiceRepo{},
		stubAnalyticsRepo{revenue: []repository.PeriodBucket{
			{Period: "2026-07", Count: 3, Value: decimal.RequireFromString("4500")},
			{Period: "2026-08", Count: 1, Value: decimal.RequireFromString("1200")},
		}},
	)

	resp, err := uc.GetRevenueSeries(context.Background(), testOrg, "month", time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, "month", resp.Period)
	require.Len(t, resp.Buckets, 2)
	assert.Equal(t, "2026-07", resp.Buckets[0].Period)
	assert.True(t, resp.Buckets[0].Value.Equal(decimal.RequireFromString("4500")))
}

func TestGetRevenueSeries_RangoInvertido(t *testing.T) {
	uc := healthyDashboardUC()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.GetRevenueSeries(context.Background(), testOrg, "month", from, to)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetGrowthSeries_CombinadoColapsaPeriodos(t *testing.T) {
	uc := NewDashboardUseCase(
		stubClientRepo{}, stubProjectRepo{}, stubOrderRepo{}, stubTicketRepo{}, stubInvoiceRepo{},
		stubAnalyticsRepo{creation: map[string][]repository.PeriodBucket{
			repository.SeriesClients: {{Period: "2026-07", Count: 2}, {Period: "2026-08", Count: 1}},
			repository.SeriesOrders:  {{Period: "2026-08", Count: 4}},
			repository.SeriesTickets: {{Period: "2026-07", Count: 5}},
		}},
	)

	resp, err := uc.GetGrowthSeries(context.Background(), testOrg, "month", time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Len(t, resp.ByEntity, len(growthSeries), "una serie por entidad, aunque esté vacía")
	require.Len(t, resp.Combined, 2)
	assert.Equal(t, "2026-07", resp.Combined[0].Period)
	assert.Equal(t, 7, resp.Combined[0].Count)
	assert.Equal(t, "2026-08", resp.Combined[1].Period)
	assert.Equal(t, 5, resp.Combined[1].Count)
}

func TestGetGrowthSeries_UnaSerieFallaTodoFalla(t *testing.T) {
	uc := NewDashboardUseCase(
		stubClientRepo{}, stubProjectRepo{}, stubOrderRepo{}, stubTicketRepo{}, stubInvoiceRepo{},
		stubAnalyticsRepo{err: errors.New("relation missing")},
	)

	resp, err := uc.GetGrowthSeries(context.Background(), testOrg, "month", time.Time{}, time.Time{})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation missing")
}
