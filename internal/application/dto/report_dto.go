package dto

import (
	"encoding/json"
	"time"
)

// GenerateReportRequest entrada de POST /reports/generate.
type GenerateReportRequest struct {
	Name    string          `json:"name" validate:"required,min=2,max=200"`
	Type    string          `json:"type" validate:"required,oneof=revenue clients projects tickets growth"`
	Period  string          `json:"period" validate:"omitempty,oneof=day week month year"`
	From    *time.Time      `json:"from"`
	To      *time.Time      `json:"to"`
	Filters json.RawMessage `json:"filters"`
}

// ReportResponse salida de un reporte generado.
type ReportResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Filters        json.RawMessage `json:"filters,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	GeneratedBy    string          `json:"generated_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateScheduledReportRequest alta de un reporte programado.
type CreateScheduledReportRequest struct {
	Name       string          `json:"name" validate:"required,min=2,max=200"`
	Type       string          `json:"type" validate:"required,oneof=revenue clients projects tickets growth"`
	Filters    json.RawMessage `json:"filters"`
	Recipients []string        `json:"recipients" validate:"required,min=1,max=20,dive,email"`
	Frequency  string          `json:"frequency" validate:"required,oneof=daily weekly monthly"`
}

// UpdateScheduledReportRequest entrada de actualización parcial (nil = sin cambio).
type UpdateScheduledReportRequest struct {
	Name       *string         `json:"name" validate:"omitempty,min=2,max=200"`
	Filters    json.RawMessage `json:"filters"`
	Recipients []string        `json:"recipients" validate:"omitempty,min=1,max=20,dive,email"`
	Frequency  *string         `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
}

// ScheduledReportResponse salida de un reporte programado.
type ScheduledReportResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Filters        json.RawMessage `json:"filters,omitempty"`
	Recipients     []string        `json:"recipients"`
	Frequency      string          `json:"frequency"`
	NextRunAt      time.Time       `json:"next_run_at"`
	LastRunAt      *time.Time      `json:"last_run_at,omitempty"`
	LastStatus     string          `json:"last_status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
