package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PDFUseCase genera documentos PDF de facturas y cotizaciones, administra
// plantillas y deja registro de auditoría de cada generación.
type PDFUseCase struct {
	invoiceRepo   repository.InvoiceRepository
	quotationRepo repository.QuotationRepository
	orgRepo       repository.OrganizationRepository
	clientRepo    repository.ClientRepository
	pdfRepo       repository.PDFRepository
	invoiceGen    InvoicePDFGenerator
	quotationGen  QuotationPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	quotationRepo repository.QuotationRepository,
	orgRepo repository.OrganizationRepository,
	clientRepo repository.ClientRepository,
	pdfRepo repository.PDFRepository,
	invoiceGen InvoicePDFGenerator,
	quotationGen QuotationPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		orgRepo:       orgRepo,
		clientRepo:    clientRepo,
		pdfRepo:       pdfRepo,
		invoiceGen:    invoiceGen,
		quotationGen:  quotationGen,
	}
}

const generatorName = "maroto/v2"

// DownloadInvoicePDF carga factura, organización y cliente, genera el PDF y
// registra la generación.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe en el tenant.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, organizationID, invoiceID, userID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	for _, it := range items {
		inv.Items = append(inv.Items, *it)
	}

	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil || org == nil {
		return nil, "", fmt.Errorf("pdf: obtener organización: %w", err)
	}
	client, err := uc.clientRepo.GetByID(ctx, organizationID, inv.ClientID)
	if err != nil || client == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	pdfBytes, err = uc.invoiceGen.GenerateInvoicePDF(ctx, inv, org, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber)
	uc.audit(ctx, organizationID, entity.PDFTypeInvoice, inv.ID, filename, int64(len(pdfBytes)), userID)
	return pdfBytes, filename, nil
}

// DownloadQuotationPDF ídem para cotizaciones.
func (uc *PDFUseCase) DownloadQuotationPDF(ctx context.Context, organizationID, quotationID, userID string) (pdfBytes []byte, filename string, err error) {
	quo, err := uc.quotationRepo.GetByID(ctx, organizationID, quotationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if quo == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.quotationRepo.ListItems(ctx, quo.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	for _, it := range items {
		quo.Items = append(quo.Items, *it)
	}

	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil || org == nil {
		return nil, "", fmt.Errorf("pdf: obtener organización: %w", err)
	}
	client, err := uc.clientRepo.GetByID(ctx, organizationID, quo.ClientID)
	if err != nil || client == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	pdfBytes, err = uc.quotationGen.GenerateQuotationPDF(ctx, quo, org, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("cotizacion_%s.pdf", quo.QuotationNumber)
	uc.audit(ctx, organizationID, entity.PDFTypeQuotation, quo.ID, filename, int64(len(pdfBytes)), userID)
	return pdfBytes, filename, nil
}

// audit registra la generación. Un fallo aquí no bloquea la descarga.
func (uc *PDFUseCase) audit(ctx context.Context, organizationID, sourceType, sourceID, filename string, size int64, userID string) {
	_ = uc.pdfRepo.CreateRecord(ctx, &entity.PDFRecord{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		SourceType:     sourceType,
		SourceID:       sourceID,
		Filename:       filename,
		SizeBytes:      size,
		Generator:      generatorName,
		GeneratedBy:    userID,
		CreatedAt:      time.Now(),
	})
}

// CreateTemplate registra una plantilla de documento.
func (uc *PDFUseCase) CreateTemplate(ctx context.Context, organizationID string, in dto.CreatePDFTemplateRequest) (*dto.PDFTemplateResponse, error) {
	now := time.Now()
	tpl := &entity.PDFTemplate{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Type:           in.Type,
		HTMLBody:       in.HTMLBody,
		CSSBody:        in.CSSBody,
		IsDefault:      in.IsDefault,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.pdfRepo.CreateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return toPDFTemplateResponse(tpl), nil
}

// GetTemplate obtiene una plantilla por ID.
func (uc *PDFUseCase) GetTemplate(ctx context.Context, organizationID, id string) (*dto.PDFTemplateResponse, error) {
	tpl, err := uc.pdfRepo.GetTemplateByID(ctx, organizationID, id)
	if err != nil || tpl == nil {
		return nil, err
	}
	return toPDFTemplateResponse(tpl), nil
}

// ListTemplates lista plantillas, opcionalmente filtradas por tipo.
func (uc *PDFUseCase) ListTemplates(ctx context.Context, organizationID, pdfType string, q dto.ListQuery) ([]dto.PDFTemplateResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.pdfRepo.ListTemplates(ctx, organizationID, pdfType,
		repository.Page{Limit: q.Limit, Offset: q.Offset()})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.PDFTemplateResponse, 0, len(list))
	for _, tpl := range list {
		items = append(items, *toPDFTemplateResponse(tpl))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// UpdateTemplate actualización parcial de una plantilla.
func (uc *PDFUseCase) UpdateTemplate(ctx context.Context, organizationID, id string, in dto.UpdatePDFTemplateRequest) (*dto.PDFTemplateResponse, error) {
	patch := entity.PDFTemplatePatch{
		Name:      in.Name,
		HTMLBody:  in.HTMLBody,
		CSSBody:   in.CSSBody,
		IsDefault: in.IsDefault,
	}
	tpl, err := uc.pdfRepo.UpdateTemplate(ctx, organizationID, id, patch)
	if err != nil || tpl == nil {
		return nil, err
	}
	return toPDFTemplateResponse(tpl), nil
}

// DeleteTemplate baja lógica de una plantilla.
func (uc *PDFUseCase) DeleteTemplate(ctx context.Context, organizationID, id string) (*dto.PDFTemplateResponse, error) {
	tpl, err := uc.pdfRepo.SoftDeleteTemplate(ctx, organizationID, id)
	if err != nil || tpl == nil {
		return nil, err
	}
	return toPDFTemplateResponse(tpl), nil
}

// ListRecords historial de documentos generados.
func (uc *PDFUseCase) ListRecords(ctx context.Context, organizationID string, q dto.ListQuery) ([]dto.PDFRecordResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.pdfRepo.ListRecords(ctx, organizationID,
		repository.Page{Limit: q.Limit, Offset: q.Offset()})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.PDFRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, dto.PDFRecordResponse{
			ID:             rec.ID,
			OrganizationID: rec.OrganizationID,
			SourceType:     rec.SourceType,
			SourceID:       rec.SourceID,
			Filename:       rec.Filename,
			SizeBytes:      rec.SizeBytes,
			Generator:      rec.Generator,
			GeneratedBy:    rec.GeneratedBy,
			CreatedAt:      rec.CreatedAt,
		})
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

func toPDFTemplateResponse(tpl *entity.PDFTemplate) *dto.PDFTemplateResponse {
	if tpl == nil {
		return nil
	}
	return &dto.PDFTemplateResponse{
		ID:             tpl.ID,
		OrganizationID: tpl.OrganizationID,
		Name:           tpl.Name,
		Type:           tpl.Type,
		HTMLBody:       tpl.HTMLBody,
		CSSBody:        tpl.CSSBody,
		IsDefault:      tpl.IsDefault,
		CreatedAt:      tpl.CreatedAt,
		UpdatedAt:      tpl.UpdatedAt,
	}
}
