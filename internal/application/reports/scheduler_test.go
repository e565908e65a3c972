package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOverdueInvoiceRepo struct {
	repository.InvoiceRepository
	marked int64
	err    error

	called bool
}

func (s *stubOverdueInvoiceRepo) MarkOverdue(context.Context, time.Time) (int64, error) {
	s.called = true
	return s.marked, s.err
}

func dueReport(reportType string) *entity.ScheduledReport {
	return &entity.ScheduledReport{
		ID:             uuid.NewString(),
		OrganizationID: testOrg,
		Name:           "programado",
		Type:           reportType,
		Frequency:      entity.FrequencyDaily,
		NextRunAt:      time.Now().Add(-time.Minute),
		LastStatus:     entity.RunStatusPending,
		IsActive:       true,
	}
}

func TestSweep_EjecutaVencidosYAgendaSiguiente(t *testing.T) {
	repo := &fakeReportRepo{}
	job := dueReport(entity.ReportTypeTickets)
	repo.scheduled = append(repo.scheduled, job)
	invoices := &stubOverdueInvoiceRepo{marked: 2}
	s := NewScheduler(repo, invoices, newReportUC(repo), time.Minute, logger.NewNop())

	s.sweep(context.Background())

	assert.True(t, invoices.called, "el barrido marca facturas vencidas primero")
	require.Len(t, repo.reports, 1, "el reporte vencido se ejecuta")
	assert.Equal(t, entity.RunStatusSuccess, repo.recordedStatus)
	assert.True(t, repo.recordedNext.After(time.Now()), "la siguiente ejecución queda agendada")
	assert.Equal(t, entity.RunStatusSuccess, job.LastStatus)
}

func TestSweep_TrabajoFallidoTambienSeReagenda(t *testing.T) {
	repo := &fakeReportRepo{}
	job := dueReport("payroll") // tipo desconocido: la agregación falla
	repo.scheduled = append(repo.scheduled, job)
	s := NewScheduler(repo, &stubOverdueInvoiceRepo{}, newReportUC(repo), time.Minute, logger.NewNop())

	s.sweep(context.Background())

	assert.Empty(t, repo.reports, "sin resultado persistido")
	assert.Equal(t, entity.RunStatusFailed, repo.recordedStatus)
	assert.True(t, repo.recordedNext.After(time.Now()), "no se reintenta en caliente")
}

func TestSweep_IgnoraNoVencidos(t *testing.T) {
	repo := &fakeReportRepo{}
	job := dueReport(entity.ReportTypeClients)
	job.NextRunAt = time.Now().Add(time.Hour)
	repo.scheduled = append(repo.scheduled, job)
	s := NewScheduler(repo, &stubOverdueInvoiceRepo{}, newReportUC(repo), time.Minute, logger.NewNop())

	s.sweep(context.Background())

	assert.Empty(t, repo.reports)
	assert.Empty(t, repo.recordedStatus)
}

func TestSweep_ErrorEnMarkOverdueNoDetieneLosReportes(t *testing.T) {
	repo := &fakeReportRepo{}
	repo.scheduled = append(repo.scheduled, dueReport(entity.ReportTypeClients))
	invoices := &stubOverdueInvoiceRepo{err: errors.New("deadlock")}
	s := NewScheduler(repo, invoices, newReportUC(repo), time.Minute, logger.NewNop())

	s.sweep(context.Background())

	require.Len(t, repo.reports, 1, "los reportes corren aunque el barrido de facturas falle")
}

func TestRun_SeDetieneConElContexto(t *testing.T) {
	repo := &fakeReportRepo{}
	s := NewScheduler(repo, &stubOverdueInvoiceRepo{}, newReportUC(repo), 10*time.Millisecond, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el scheduler no se detuvo al cancelar el contexto")
	}
}
