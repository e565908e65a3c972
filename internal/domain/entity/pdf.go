package entity

import "time"

// Tipos de documento PDF que el sistema sabe generar.
const (
	PDFTypeInvoice   = "invoice"
	PDFTypeQuotation = "quotation"
	PDFTypeReport    = "report"
)

// PDFTemplate plantilla de renderizado (HTML/CSS con placeholders tipo
// {{client_name}}). El contenido es opaco para el backend: solo se almacena
// y versiona; el generador maroto usa su propio layout.
type PDFTemplate struct {
	ID             string
	OrganizationID string
	Name           string
	Type           string // ver constantes PDFType*
	HTMLBody       string
	CSSBody        string
	IsDefault      bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PDFTemplatePatch campos actualizables de una plantilla (nil = sin cambio).
type PDFTemplatePatch struct {
	Name      *string
	HTMLBody  *string
	CSSBody   *string
	IsDefault *bool
}

// PDFRecord registro de auditoría de cada documento generado.
type PDFRecord struct {
	ID             string
	OrganizationID string
	SourceType     string // ver constantes PDFType*
	SourceID       string
	Filename       string
	SizeBytes      int64
	Generator      string // ej. "maroto/v2"
	GeneratedBy    string // user_id
	CreatedAt      time.Time
}
