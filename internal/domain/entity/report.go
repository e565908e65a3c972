package entity

import (
	"encoding/json"
	"time"
)

// Tipos de reporte disponibles.
const (
	ReportTypeRevenue  = "revenue"
	ReportTypeClients  = "clients"
	ReportTypeProjects = "projects"
	ReportTypeTickets  = "tickets"
	ReportTypeGrowth   = "growth"
)

// Frecuencias de ejecución de reportes programados.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Estados de la última ejecución de un reporte programado.
const (
	RunStatusPending = "pending"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Report ejecución puntual de un reporte: qué se pidió y qué salió.
type Report struct {
	ID             string
	OrganizationID string
	Name           string
	Type           string          // ver constantes ReportType*
	Filters        json.RawMessage // payload de filtros/opciones del caller
	Result         json.RawMessage // resultado agregado serializado
	GeneratedBy    string          // user_id
	CreatedAt      time.Time
}

// ScheduledReport trabajo recurrente de exportación.
type ScheduledReport struct {
	ID             string
	OrganizationID string
	Name           string
	Type           string          // ver constantes ReportType*
	Filters        json.RawMessage
	Recipients     []string // emails destino
	Frequency      string   // ver constantes Frequency*
	NextRunAt      time.Time
	LastRunAt      *time.Time
	LastStatus     string // ver constantes RunStatus*
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScheduledReportPatch campos actualizables (nil = sin cambio).
type ScheduledReportPatch struct {
	Name       *string
	Filters    json.RawMessage
	Recipients []string
	Frequency  *string
}
