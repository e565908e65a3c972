package dto

import "time"

// CreatePDFTemplateRequest entrada para crear una plantilla.
type CreatePDFTemplateRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=200"`
	Type      string `json:"type" validate:"required,oneof=invoice quotation report"`
	HTMLBody  string `json:"html_body" validate:"required"`
	CSSBody   string `json:"css_body"`
	IsDefault bool   `json:"is_default"`
}

// UpdatePDFTemplateRequest entrada de actualización parcial (nil = sin cambio).
type UpdatePDFTemplateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=200"`
	HTMLBody  *string `json:"html_body"`
	CSSBody   *string `json:"css_body"`
	IsDefault *bool   `json:"is_default"`
}

// PDFTemplateResponse salida de una plantilla.
type PDFTemplateResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	HTMLBody       string    `json:"html_body"`
	CSSBody        string    `json:"css_body,omitempty"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PDFRecordResponse salida de un registro de auditoría de generación.
type PDFRecordResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	SourceType     string    `json:"source_type"`
	SourceID       string    `json:"source_id"`
	Filename       string    `json:"filename"`
	SizeBytes      int64     `json:"size_bytes"`
	Generator      string    `json:"generator"`
	GeneratedBy    string    `json:"generated_by"`
	CreatedAt      time.Time `json:"created_at"`
}
