package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ReportRepository puerto de persistencia para reportes puntuales y programados.
type ReportRepository interface {
	CreateReport(ctx context.Context, r *entity.Report) error
	GetReportByID(ctx context.Context, organizationID, id string) (*entity.Report, error)
	ListReports(ctx context.Context, organizationID string, p Page) ([]*entity.Report, int, error)

	CreateScheduled(ctx context.Context, s *entity.ScheduledReport) error
	GetScheduledByID(ctx context.Context, organizationID, id string) (*entity.ScheduledReport, error)
	ListScheduled(ctx context.Context, organizationID string, p Page) ([]*entity.ScheduledReport, int, error)
	UpdateScheduled(ctx context.Context, organizationID, id string, patch entity.ScheduledReportPatch) (*entity.ScheduledReport, error)
	SoftDeleteScheduled(ctx context.Context, organizationID, id string) (*entity.ScheduledReport, error)

	// ListDue devuelve los programados con next_run_at <= now, de todos los
	// tenants (lo invoca el scheduler).
	ListDue(ctx context.Context, now time.Time) ([]*entity.ScheduledReport, error)
	// RecordRun registra el resultado de una ejecución y agenda la siguiente.
	RecordRun(ctx context.Context, id string, ranAt time.Time, status string, nextRun time.Time) error
}
