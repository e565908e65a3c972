// Package reports implementa la generación de reportes puntuales y la
// administración de reportes programados.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ReportUseCase genera reportes bajo demanda y gestiona los programados.
// La agregación en sí se delega al caso de uso de analítica y a los
// repositorios de cada entidad; aquí solo se serializa y persiste.
type ReportUseCase struct {
	reports   repository.ReportRepository
	dashboard *analytics.DashboardUseCase
	clients   repository.ClientRepository
	projects  repository.ProjectRepository
	tickets   repository.TicketRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reports repository.ReportRepository,
	dashboard *analytics.DashboardUseCase,
	clients repository.ClientRepository,
	projects repository.ProjectRepository,
	tickets repository.TicketRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reports:   reports,
		dashboard: dashboard,
		clients:   clients,
		projects:  projects,
		tickets:   tickets,
	}
}

// Generate ejecuta la agregación del tipo pedido y persiste el resultado.
func (uc *ReportUseCase) Generate(ctx context.Context, organizationID, userID string, req dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	result, err := uc.runAggregation(ctx, organizationID, req.Type, req.Period, derefTime(req.From), derefTime(req.To))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.Report{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Type:           req.Type,
		Filters:        req.Filters,
		Result:         result,
		GeneratedBy:    userID,
		CreatedAt:      now,
	}
	if err := uc.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// GetByID obtiene un reporte generado.
func (uc *ReportUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ReportResponse, error) {
	report, err := uc.reports.GetReportByID(ctx, organizationID, id)
	if err != nil || report == nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// List lista los reportes generados del tenant.
func (uc *ReportUseCase) List(ctx context.Context, organizationID string, q dto.ListQuery) ([]*dto.ReportResponse, *dto.Pagination, error) {
	q.Normalize()
	items, total, err := uc.reports.ListReports(ctx, organizationID, repository.Page{Limit: q.Limit, Offset: q.Offset()})
	if err != nil {
		return nil, nil, err
	}
	out := make([]*dto.ReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReportResponse(r))
	}
	return out, dto.NewPagination(q.Page, q.Limit, total), nil
}

// CreateScheduled da de alta un reporte programado. La primera ejecución se
// agenda a partir de ahora según la frecuencia.
func (uc *ReportUseCase) CreateScheduled(ctx context.Context, organizationID string, req dto.CreateScheduledReportRequest) (*dto.ScheduledReportResponse, error) {
	now := time.Now()
	s := &entity.ScheduledReport{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Type:           req.Type,
		Filters:        req.Filters,
		Recipients:     req.Recipients,
		Frequency:      req.Frequency,
		NextRunAt:      NextRun(now, req.Frequency),
		LastStatus:     entity.RunStatusPending,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.reports.CreateScheduled(ctx, s); err != nil {
		return nil, err
	}
	return toScheduledResponse(s), nil
}

// GetScheduled obtiene un reporte programado.
func (uc *ReportUseCase) GetScheduled(ctx context.Context, organizationID, id string) (*dto.ScheduledReportResponse, error) {
	s, err := uc.reports.GetScheduledByID(ctx, organizationID, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toScheduledResponse(s), nil
}

// ListScheduled lista los reportes programados del tenant.
func (uc *ReportUseCase) ListScheduled(ctx context.Context, organizationID string, q dto.ListQuery) ([]*dto.ScheduledReportResponse, *dto.Pagination, error) {
	q.Normalize()
	items, total, err := uc.reports.ListScheduled(ctx, organizationID, repository.Page{Limit: q.Limit, Offset: q.Offset()})
	if err != nil {
		return nil, nil, err
	}
	out := make([]*dto.ScheduledReportResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toScheduledResponse(s))
	}
	return out, dto.NewPagination(q.Page, q.Limit, total), nil
}

// UpdateScheduled actualización parcial. Un cambio de frecuencia aplica a
// partir de la siguiente ejecución ya agendada.
func (uc *ReportUseCase) UpdateScheduled(ctx context.Context, organizationID, id string, req dto.UpdateScheduledReportRequest) (*dto.ScheduledReportResponse, error) {
	patch := entity.ScheduledReportPatch{
		Name:       req.Name,
		Filters:    req.Filters,
		Recipients: req.Recipients,
		Frequency:  req.Frequency,
	}
	s, err := uc.reports.UpdateScheduled(ctx, organizationID, id, patch)
	if err != nil || s == nil {
		return nil, err
	}
	return toScheduledResponse(s), nil
}

// DeleteScheduled baja lógica de un reporte programado.
func (uc *ReportUseCase) DeleteScheduled(ctx context.Context, organizationID, id string) (bool, error) {
	s, err := uc.reports.SoftDeleteScheduled(ctx, organizationID, id)
	if err != nil {
		return false, err
	}
	return s != nil, nil
}

// ExecuteScheduled corre la agregación de un reporte programado y persiste el
// resultado como reporte generado. Lo invoca el scheduler.
func (uc *ReportUseCase) ExecuteScheduled(ctx context.Context, s *entity.ScheduledReport) error {
	result, err := uc.runAggregation(ctx, s.OrganizationID, s.Type, "", time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	report := &entity.Report{
		ID:             uuid.NewString(),
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		Type:           s.Type,
		Filters:        s.Filters,
		Result:         result,
		GeneratedBy:    "scheduler",
		CreatedAt:      time.Now(),
	}
	return uc.reports.CreateReport(ctx, report)
}

// runAggregation ejecuta la consulta que corresponde al tipo de reporte y
// devuelve el resultado serializado.
func (uc *ReportUseCase) runAggregation(ctx context.Context, organizationID, reportType, period string, from, to time.Time) (json.RawMessage, error) {
	if period == "" {
		period = "month"
	}

	var payload any
	switch reportType {
	case entity.ReportTypeRevenue:
		res, err := uc.dashboard.GetRevenueSeries(ctx, organizationID, period, from, to)
		if err != nil {
			return nil, err
		}
		payload = res
	case entity.ReportTypeGrowth:
		res, err := uc.dashboard.GetGrowthSeries(ctx, organizationID, period, from, to)
		if err != nil {
			return nil, err
		}
		payload = res
	case entity.ReportTypeClients:
		stats, err := uc.clients.Statistics(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		payload = dto.ClientStatsResponse{Total: stats.Total, NewThisMonth: stats.NewThisMonth, ByIndustry: stats.ByIndustry}
	case entity.ReportTypeProjects:
		stats, err := uc.projects.Statistics(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		payload = dto.ProjectStatsResponse{Total: stats.Total, ByStatus: stats.ByStatus}
	case entity.ReportTypeTickets:
		stats, err := uc.tickets.Statistics(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		payload = dto.TicketStatsResponse{Total: stats.Total, ByStatus: stats.ByStatus, ByPriority: stats.ByPriority}
	default:
		return nil, fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, reportType)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar resultado del reporte: %w", err)
	}
	return raw, nil
}

// NextRun calcula la próxima ejecución a partir de un instante dado.
func NextRun(from time.Time, frequency string) time.Time {
	switch frequency {
	case entity.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default: // daily
		return from.AddDate(0, 0, 1)
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toReportResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Type:           r.Type,
		Filters:        r.Filters,
		Result:         r.Result,
		GeneratedBy:    r.GeneratedBy,
		CreatedAt:      r.CreatedAt,
	}
}

func toScheduledResponse(s *entity.ScheduledReport) *dto.ScheduledReportResponse {
	return &dto.ScheduledReportResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		Type:           s.Type,
		Filters:        s.Filters,
		Recipients:     s.Recipients,
		Frequency:      s.Frequency,
		NextRunAt:      s.NextRunAt,
		LastRunAt:      s.LastRunAt,
		LastStatus:     s.LastStatus,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
