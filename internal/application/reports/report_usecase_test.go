package reports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOrg  = "11111111-1111-4111-8111-111111111111"
	testUser = "33333333-3333-4333-8333-333333333333"
)

// Stubs por embedding: solo los métodos que el caso de uso toca.

type stubClientRepo struct {
	repository.ClientRepository
	stats *repository.ClientStats
}

func (s stubClientRepo) Statistics(context.Context, string) (*repository.ClientStats, error) {
	return s.stats, nil
}

type stubProjectRepo struct {
	repository.ProjectRepository
	stats *repository.ProjectStats
}

func (s stubProjectRepo) Statistics(context.Context, string) (*repository.ProjectStats, error) {
	return s.stats, nil
}

type stubOrderRepo struct {
	repository.OrderRepository
}

func (s stubOrderRepo) Statistics(context.Context, string) (*repository.OrderStats, error) {
	return &repository.OrderStats{}, nil
}

type stubTicketRepo struct {
	repository.TicketRepository
	stats *repository.TicketStats
}

func (s stubTicketRepo) Statistics(context.Context, string) (*repository.TicketStats, error) {
	return s.stats, nil
}

type stubInvoiceRepo struct {
	repository.InvoiceRepository
}

func (s stubInvoiceRepo) Statistics(context.Context, string) (*repository.InvoiceStats, error) {
	return &repository.InvoiceStats{}, nil
}

type stubAnalyticsRepo struct {
	revenue []repository.PeriodBucket
}

func (s stubAnalyticsRepo) RevenueByPeriod(_ context.Context, _, _ string, _, _ time.Time) ([]repository.PeriodBucket, error) {
	return s.revenue, nil
}

func (s stubAnalyticsRepo) CreationSeries(_ context.Context, _, _, _ string, _, _ time.Time) ([]repository.PeriodBucket, error) {
	return nil, nil
}

// fakeReportRepo persiste en memoria reportes generados y programados.
type fakeReportRepo struct {
	reports   []*entity.Report
	scheduled []*entity.ScheduledReport

	recordedStatus string
	recordedNext   time.Time
}

func (f *fakeReportRepo) CreateReport(_ context.Context, r *entity.Report) error {
	f.reports = append(f.reports, r)
	return nil
}

func (f *fakeReportRepo) GetReportByID(_ context.Context, organizationID, id string) (*entity.Report, error) {
	for _, r := range f.reports {
		if r.ID == id && r.OrganizationID == organizationID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListReports(_ context.Context, organizationID string, p repository.Page) ([]*entity.Report, int, error) {
	var all []*entity.Report
	for _, r := range f.reports {
		if r.OrganizationID == organizationID {
			all = append(all, r)
		}
	}
	total := len(all)
	if p.Offset >= total {
		return nil, total, nil
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return all[p.Offset:end], total, nil
}

func (f *fakeReportRepo) CreateScheduled(_ context.Context, s *entity.ScheduledReport) error {
	f.scheduled = append(f.scheduled, s)
	return nil
}

func (f *fakeReportRepo) GetScheduledByID(_ context.Context, organizationID, id string) (*entity.ScheduledReport, error) {
	for _, s := range f.scheduled {
		if s.ID == id && s.OrganizationID == organizationID && s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListScheduled(_ context.Context, organizationID string, _ repository.Page) ([]*entity.ScheduledReport, int, error) {
	var all []*entity.ScheduledReport
	for _, s := range f.scheduled {
		if s.OrganizationID == organizationID && s.IsActive {
			all = append(all, s)
		}
	}
	return all, len(all), nil
}

func (f *fakeReportRepo) UpdateScheduled(_ context.Context, organizationID, id string, patch entity.ScheduledReportPatch) (*entity.ScheduledReport, error) {
	for _, s := range f.scheduled {
		if s.ID == id && s.OrganizationID == organizationID && s.IsActive {
			if patch.Name != nil {
				s.Name = *patch.Name
			}
			if patch.Frequency != nil {
				s.Frequency = *patch.Frequency
			}
			if patch.Recipients != nil {
				s.Recipients = patch.Recipients
			}
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) SoftDeleteScheduled(_ context.Context, organizationID, id string) (*entity.ScheduledReport, error) {
	for _, s := range f.scheduled {
		if s.ID == id && s.OrganizationID == organizationID && s.IsActive {
			s.IsActive = false
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListDue(_ context.Context, now time.Time) ([]*entity.ScheduledReport, error) {
	var due []*entity.ScheduledReport
	for _, s := range f.scheduled {
		if s.IsActive && !s.NextRunAt.After(now) {
			due = append(due, s)
		}
	}
	return due, nil
}

func (f *fakeReportRepo) RecordRun(_ context.Context, id string, _ time.Time, status string, nextRun time.Time) error {
	f.recordedStatus = status
	f.recordedNext = nextRun
	for _, s := range f.scheduled {
		if s.ID == id {
			s.LastStatus = status
			s.NextRunAt = nextRun
		}
	}
	return nil
}

func newReportUC(repo *fakeReportRepo) *ReportUseCase {
	dashboard := analytics.NewDashboardUseCase(
		stubClientRepo{stats: &repository.ClientStats{Total: 10}},
		stubProjectRepo{stats: &repository.ProjectStats{Total: 4}},
		stubOrderRepo{},
		stubTicketRepo{stats: &repository.TicketStats{Total: 6}},
		stubInvoiceRepo{},
		stubAnalyticsRepo{revenue: []repository.PeriodBucket{
			{Period: "2026-08", Count: 2, Value: decimal.RequireFromString("3000")},
		}},
	)
	return NewReportUseCase(
		repo,
		dashboard,
		stubClientRepo{stats: &repository.ClientStats{Total: 10, ByIndustry: map[string]int{"retail": 6}}},
		stubProjectRepo{stats: &repository.ProjectStats{Total: 4}},
		stubTicketRepo{stats: &repository.TicketStats{Total: 6}},
	)
}

// ─────────────────────────────────────────────
// NextRun
// ─────────────────────────────────────────────

func TestNextRun_Frecuencias(t *testing.T) {
	base := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 1), NextRun(base, entity.FrequencyDaily))
	assert.Equal(t, base.AddDate(0, 0, 7), NextRun(base, entity.FrequencyWeekly))
	assert.Equal(t, base.AddDate(0, 1, 0), NextRun(base, entity.FrequencyMonthly))
	assert.Equal(t, base.AddDate(0, 0, 1), NextRun(base, ""), "frecuencia desconocida cae en daily")
}

// ─────────────────────────────────────────────
// Generate
// ─────────────────────────────────────────────

func TestGenerate_TipoClientes(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)

	resp, err := uc.Generate(context.Background(), testOrg, testUser, dto.GenerateReportRequest{
		Name: "clientes agosto",
		Type: entity.ReportTypeClients,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, testUser, resp.GeneratedBy)
	require.Len(t, repo.reports, 1)

	var payload dto.ClientStatsResponse
	require.NoError(t, json.Unmarshal(repo.reports[0].Result, &payload))
	assert.Equal(t, 10, payload.Total)
	assert.Equal(t, 6, payload.ByIndustry["retail"])
}

func TestGenerate_TipoRevenueDelegaEnAnalitica(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)

	resp, err := uc.Generate(context.Background(), testOrg, testUser, dto.GenerateReportRequest{
		Name: "ingresos",
		Type: entity.ReportTypeRevenue,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)

	var payload dto.RevenueSeriesResponse
	require.NoError(t, json.Unmarshal(repo.reports[0].Result, &payload))
	assert.Equal(t, "month", payload.Period, "período por defecto")
	require.Len(t, payload.Buckets, 1)
	assert.Equal(t, "2026-08", payload.Buckets[0].Period)
}

func TestGenerate_TipoDesconocido(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)

	resp, err := uc.Generate(context.Background(), testOrg, testUser, dto.GenerateReportRequest{
		Name: "x",
		Type: "payroll",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.reports)
}

// ─────────────────────────────────────────────
// Programados
// ─────────────────────────────────────────────

func TestCreateScheduled_AgendaPrimeraEjecucion(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)
	antes := time.Now()

	resp, err := uc.CreateScheduled(context.Background(), testOrg, dto.CreateScheduledReportRequest{
		Name:       "semanal de tickets",
		Type:       entity.ReportTypeTickets,
		Frequency:  entity.FrequencyWeekly,
		Recipients: []string{"gerencia@acme.co"},
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.RunStatusPending, resp.LastStatus)
	require.Len(t, repo.scheduled, 1)
	s := repo.scheduled[0]
	assert.True(t, s.IsActive)
	assert.WithinDuration(t, antes.AddDate(0, 0, 7), s.NextRunAt, 5*time.Second)
}

func TestExecuteScheduled_PersisteComoScheduler(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)
	s := &entity.ScheduledReport{
		ID:             uuid.NewString(),
		OrganizationID: testOrg,
		Name:           "crecimiento mensual",
		Type:           entity.ReportTypeGrowth,
		Frequency:      entity.FrequencyMonthly,
		IsActive:       true,
	}

	err := uc.ExecuteScheduled(context.Background(), s)

	require.NoError(t, err)
	require.Len(t, repo.reports, 1)
	assert.Equal(t, "scheduler", repo.reports[0].GeneratedBy)
	assert.Equal(t, entity.ReportTypeGrowth, repo.reports[0].Type)
}

func TestDeleteScheduled(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo)
	s := &entity.ScheduledReport{ID: uuid.NewString(), OrganizationID: testOrg, IsActive: true}
	repo.scheduled = append(repo.scheduled, s)

	found, err := uc.DeleteScheduled(context.Background(), testOrg, s.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, s.IsActive)

	found, err = uc.DeleteScheduled(context.Background(), testOrg, s.ID)
	require.NoError(t, err)
	assert.False(t, found, "la segunda baja no encuentra nada")
}
