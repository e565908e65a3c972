package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// QuotationUseCase casos de uso de cotizaciones. La conversión a factura
// vive en el módulo billing; aquí CRUD, envío y expiración.
type QuotationUseCase struct {
	repo    repository.QuotationRepository
	clients repository.ClientRepository
	tx      TxRunner
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(repo repository.QuotationRepository, clients repository.ClientRepository, tx TxRunner) *QuotationUseCase {
	return &QuotationUseCase{repo: repo, clients: clients, tx: tx}
}

func validateQuotationItems(items []dto.QuotationItemRequest) error {
	for i, it := range items {
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: items[%d].quantity debe ser > 0", domain.ErrInvalidInput, i)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: items[%d].unit_price negativo", domain.ErrInvalidInput, i)
		}
		if it.TaxRate.IsNegative() || it.DiscountRate.IsNegative() {
			return fmt.Errorf("%w: items[%d] tasas negativas", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// Create crea una cotización con sus líneas en una sola transacción.
func (uc *QuotationUseCase) Create(ctx context.Context, organizationID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	client, err := uc.clients.GetByID(ctx, organizationID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, in.ClientID)
	}
	if err := validateQuotationItems(in.Items); err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}

	now := time.Now()
	quotation := &entity.Quotation{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		ClientID:        in.ClientID,
		QuotationNumber: documentNumber("QUO"),
		Status:          entity.QuotationStatusDraft,
		Currency:        in.Currency,
		ValidUntil:      in.ValidUntil,
		Notes:           in.Notes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]*entity.QuotationItem, 0, len(in.Items))
	subtotal, discountTotal, taxTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range in.Items {
		net, discount, tax := lineAmounts(it.Quantity, it.UnitPrice, it.TaxRate, it.DiscountRate)
		subtotal = subtotal.Add(net)
		discountTotal = discountTotal.Add(discount)
		taxTotal = taxTotal.Add(tax)
		items = append(items, &entity.QuotationItem{
			ID:           uuid.New().String(),
			QuotationID:  quotation.ID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     net,
			CreatedAt:    now,
		})
	}
	quotation.Subtotal = subtotal
	quotation.DiscountTotal = discountTotal
	quotation.TaxTotal = taxTotal
	quotation.GrandTotal = subtotal.Sub(discountTotal).Add(taxTotal)

	err = uc.tx.RunQuotation(ctx, func(quotations repository.QuotationRepository) error {
		if err := quotations.Create(ctx, quotation); err != nil {
			return err
		}
		return quotations.CreateItems(ctx, quotation.ID, items)
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		quotation.Items = append(quotation.Items, *it)
	}
	return toQuotationResponse(quotation), nil
}

// GetByID obtiene una cotización con sus líneas.
func (uc *QuotationUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.QuotationResponse, error) {
	quotation, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || quotation == nil {
		return nil, err
	}
	items, err := uc.repo.ListItems(ctx, quotation.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		quotation.Items = append(quotation.Items, *it)
	}
	return toQuotationResponse(quotation), nil
}

// List lista cotizaciones (sin líneas) con filtros, orden y paginación.
func (uc *QuotationUseCase) List(ctx context.Context, organizationID string, f repository.QuotationFilter, q dto.ListQuery) ([]dto.QuotationResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, quo := range list {
		items = append(items, *toQuotationResponse(quo))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial de la cabecera. Solo cotizaciones en draft.
func (uc *QuotationUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateQuotationRequest) (*dto.QuotationResponse, error) {
	current, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status != entity.QuotationStatusDraft {
		return nil, fmt.Errorf("%w: solo las cotizaciones en draft se pueden editar", domain.ErrConflict)
	}
	patch := entity.QuotationPatch{
		ClientID:   in.ClientID,
		Currency:   in.Currency,
		ValidUntil: in.ValidUntil,
		Notes:      in.Notes,
	}
	quotation, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || quotation == nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// ChangeStatus transición de estado de la cotización.
func (uc *QuotationUseCase) ChangeStatus(ctx context.Context, organizationID, id, status string) (*dto.QuotationResponse, error) {
	quotation, err := uc.repo.UpdateStatus(ctx, organizationID, id, status)
	if err != nil || quotation == nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// Send marca la cotización como enviada al cliente.
func (uc *QuotationUseCase) Send(ctx context.Context, organizationID, id string) (*dto.QuotationResponse, error) {
	current, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status != entity.QuotationStatusDraft {
		return nil, fmt.Errorf("%w: solo las cotizaciones en draft se pueden enviar", domain.ErrConflict)
	}
	return uc.ChangeStatus(ctx, organizationID, id, entity.QuotationStatusSent)
}

// Delete baja lógica de la cotización.
func (uc *QuotationUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.QuotationResponse, error) {
	quotation, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || quotation == nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// Statistics agregados del tenant para el dashboard.
func (uc *QuotationUseCase) Statistics(ctx context.Context, organizationID string) (*dto.QuotationStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.QuotationStatsResponse{Total: stats.Total, ByStatus: stats.ByStatus}, nil
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	items := make([]dto.QuotationItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuotationItemResponse{
			ID:           it.ID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     it.Subtotal,
		})
	}
	resp := &dto.QuotationResponse{
		ID:              q.ID,
		OrganizationID:  q.OrganizationID,
		ClientID:        q.ClientID,
		QuotationNumber: q.QuotationNumber,
		Status:          q.Status,
		Currency:        q.Currency,
		Subtotal:        q.Subtotal,
		TaxTotal:        q.TaxTotal,
		DiscountTotal:   q.DiscountTotal,
		GrandTotal:      q.GrandTotal,
		ValidUntil:      q.ValidUntil,
		Notes:           q.Notes,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = items
	}
	return resp
}
