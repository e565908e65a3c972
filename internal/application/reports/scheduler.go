package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// Scheduler ejecuta en segundo plano los reportes programados vencidos y el
// barrido de facturas enviadas con fecha de vencimiento pasada.
type Scheduler struct {
	reports  repository.ReportRepository
	invoices repository.InvoiceRepository
	usecase  *ReportUseCase
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler construye el scheduler. interval es el período entre barridos.
func NewScheduler(reports repository.ReportRepository, invoices repository.InvoiceRepository, usecase *ReportUseCase, interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		reports:  reports,
		invoices: invoices,
		usecase:  usecase,
		interval: interval,
		log:      log,
	}
}

// Run itera hasta que el contexto se cancele. Cada tick hace un barrido
// completo; un fallo en un trabajo no detiene los demás.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("scheduler iniciado")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler detenido")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	now := time.Now()

	if n, err := s.invoices.MarkOverdue(ctx, now); err != nil {
		s.log.Error().Err(err).Msg("barrido de facturas vencidas falló")
	} else if n > 0 {
		s.log.Info().Int64("count", n).Msg("facturas marcadas como vencidas")
	}

	due, err := s.reports.ListDue(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("listar reportes programados vencidos falló")
		return
	}
	for _, job := range due {
		s.runJob(ctx, job, now)
	}
}

// runJob ejecuta un reporte programado y registra el resultado. La siguiente
// ejecución se agenda incluso tras un fallo para no reintentar en caliente.
func (s *Scheduler) runJob(ctx context.Context, job *entity.ScheduledReport, now time.Time) {
	status := entity.RunStatusSuccess
	if err := s.usecase.ExecuteScheduled(ctx, job); err != nil {
		status = entity.RunStatusFailed
		s.log.Error().Err(err).
			Str("scheduled_report_id", job.ID).
			Str("organization_id", job.OrganizationID).
			Msg("ejecución de reporte programado falló")
	} else {
		s.log.Info().
			Str("scheduled_report_id", job.ID).
			Str("type", job.Type).
			Strs("recipients", job.Recipients).
			Msg("reporte programado generado")
	}

	next := NextRun(now, job.Frequency)
	if err := s.reports.RecordRun(ctx, job.ID, now, status, next); err != nil {
		s.log.Error().Err(err).
			Str("scheduled_report_id", job.ID).
			Msg("registrar ejecución de reporte programado falló")
	}
}
