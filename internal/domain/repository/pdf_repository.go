package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// PDFRepository puerto de persistencia para plantillas y auditoría de PDFs.
type PDFRepository interface {
	CreateTemplate(ctx context.Context, tpl *entity.PDFTemplate) error
	GetTemplateByID(ctx context.Context, organizationID, id string) (*entity.PDFTemplate, error)
	ListTemplates(ctx context.Context, organizationID, pdfType string, p Page) ([]*entity.PDFTemplate, int, error)
	UpdateTemplate(ctx context.Context, organizationID, id string, patch entity.PDFTemplatePatch) (*entity.PDFTemplate, error)
	SoftDeleteTemplate(ctx context.Context, organizationID, id string) (*entity.PDFTemplate, error)

	CreateRecord(ctx context.Context, rec *entity.PDFRecord) error
	ListRecords(ctx context.Context, organizationID string, p Page) ([]*entity.PDFRecord, int, error)
}
