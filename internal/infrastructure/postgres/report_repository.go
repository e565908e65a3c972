package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

const scheduledReportColumns = `id, organization_id, name, type, filters, recipients, frequency,
	next_run_at, last_run_at, last_status, is_active, created_at, updated_at`

// ReportRepo implementación de ReportRepository.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CreateReport persiste la ejecución de un reporte puntual.
func (r *ReportRepo) CreateReport(ctx context.Context, rep *entity.Report) error {
	query := `
		INSERT INTO reports (id, organization_id, name, type, filters, result, generated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.OrganizationID, rep.Name, rep.Type, rep.Filters, rep.Result, rep.GeneratedBy, rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReportByID obtiene un reporte del tenant.
func (r *ReportRepo) GetReportByID(ctx context.Context, organizationID, id string) (*entity.Report, error) {
	query := `
		SELECT id, organization_id, name, type, filters, result, generated_by, created_at
		FROM reports WHERE id = $1 AND organization_id = $2`
	var rep entity.Report
	err := r.q.QueryRow(ctx, query, id, organizationID).Scan(
		&rep.ID, &rep.OrganizationID, &rep.Name, &rep.Type, &rep.Filters, &rep.Result,
		&rep.GeneratedBy, &rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &rep, nil
}

// ListReports historial de reportes del tenant, más recientes primero.
func (r *ReportRepo) ListReports(ctx context.Context, organizationID string, p repository.Page) ([]*entity.Report, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE organization_id = $1`, organizationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := `
		SELECT id, organization_id, name, type, filters, result, generated_by, created_at
		FROM reports WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, organizationID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		var rep entity.Report
		err := rows.Scan(&rep.ID, &rep.OrganizationID, &rep.Name, &rep.Type, &rep.Filters,
			&rep.Result, &rep.GeneratedBy, &rep.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, total, rows.Err()
}

func scanScheduledReport(row pgx.Row) (*entity.ScheduledReport, error) {
	var s entity.ScheduledReport
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.Name, &s.Type, &s.Filters, &s.Recipients, &s.Frequency,
		&s.NextRunAt, &s.LastRunAt, &s.LastStatus, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateScheduled persiste un reporte programado.
func (r *ReportRepo) CreateScheduled(ctx context.Context, s *entity.ScheduledReport) error {
	query := `
		INSERT INTO scheduled_reports (id, organization_id, name, type, filters, recipients, frequency,
			next_run_at, last_run_at, last_status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OrganizationID, s.Name, s.Type, s.Filters, s.Recipients, s.Frequency,
		s.NextRunAt, s.LastRunAt, s.LastStatus, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scheduled report: %w", err)
	}
	return nil
}

// GetScheduledByID obtiene un reporte programado activo del tenant.
func (r *ReportRepo) GetScheduledByID(ctx context.Context, organizationID, id string) (*entity.ScheduledReport, error) {
	query := `SELECT ` + scheduledReportColumns + `
		FROM scheduled_reports WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	s, err := scanScheduledReport(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scheduled report: %w", err)
	}
	return s, nil
}

// ListScheduled lista reportes programados activos del tenant.
func (r *ReportRepo) ListScheduled(ctx context.Context, organizationID string, p repository.Page) ([]*entity.ScheduledReport, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM scheduled_reports WHERE organization_id = $1 AND is_active = TRUE`,
		organizationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count scheduled reports: %w", err)
	}

	query := `SELECT ` + scheduledReportColumns + `
		FROM scheduled_reports WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, organizationID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list scheduled reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.ScheduledReport
	for rows.Next() {
		s, err := scanScheduledReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan scheduled report: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// UpdateScheduled aplica un patch parcial sobre el reporte programado.
func (r *ReportRepo) UpdateScheduled(ctx context.Context, organizationID, id string, patch entity.ScheduledReportPatch) (*entity.ScheduledReport, error) {
	set := newSetClause(id, organizationID)
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.Filters != nil {
		set.Set("filters", patch.Filters)
	}
	if patch.Recipients != nil {
		set.Set("recipients", patch.Recipients)
	}
	if patch.Frequency != nil {
		set.Set("frequency", *patch.Frequency)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE scheduled_reports SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update scheduled report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetScheduledByID(ctx, organizationID, id)
}

// SoftDeleteScheduled desactiva el reporte programado y devuelve la fila previa.
func (r *ReportRepo) SoftDeleteScheduled(ctx context.Context, organizationID, id string) (*entity.ScheduledReport, error) {
	s, err := r.GetScheduledByID(ctx, organizationID, id)
	if err != nil || s == nil {
		return s, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE scheduled_reports SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete scheduled report: %w", err)
	}
	return s, nil
}

// ListDue reportes programados vencidos de todos los tenants.
func (r *ReportRepo) ListDue(ctx context.Context, now time.Time) ([]*entity.ScheduledReport, error) {
	query := `SELECT ` + scheduledReportColumns + `
		FROM scheduled_reports WHERE is_active = TRUE AND next_run_at <= $1
		ORDER BY next_run_at`
	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list due scheduled reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.ScheduledReport
	for rows.Next() {
		s, err := scanScheduledReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled report: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// RecordRun registra una ejecución y deja agendada la siguiente.
func (r *ReportRepo) RecordRun(ctx context.Context, id string, ranAt time.Time, status string, nextRun time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE scheduled_reports
		SET last_run_at = $2, last_status = $3, next_run_at = $4, updated_at = $2
		WHERE id = $1`,
		id, ranAt, status, nextRun)
	if err != nil {
		return fmt.Errorf("record scheduled report run: %w", err)
	}
	return nil
}
