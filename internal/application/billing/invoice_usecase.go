package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InvoiceUseCase casos de uso de facturación. Creación, transición paid con
// registro de pago y conversión desde cotización corren en transacción.
type InvoiceUseCase struct {
	repo       repository.InvoiceRepository
	quotations repository.QuotationRepository
	clients    repository.ClientRepository
	tx         BillingTxRunner
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, quotations repository.QuotationRepository, clients repository.ClientRepository, tx BillingTxRunner) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, quotations: quotations, clients: clients, tx: tx}
}

func invoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), suffix)
}

// computeInvoiceTotals deriva impuesto, descuento y total desde el subtotal.
// El descuento se aplica antes del impuesto.
func computeInvoiceTotals(subtotal, taxRate, discountPct decimal.Decimal) (taxAmount, discountAmount, total decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	discountAmount = subtotal.Mul(discountPct).Div(hundred)
	taxable := subtotal.Sub(discountAmount)
	taxAmount = taxable.Mul(taxRate).Div(hundred)
	total = taxable.Add(taxAmount)
	return taxAmount, discountAmount, total
}

// Create crea una factura con sus líneas en una sola transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, organizationID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	client, err := uc.clients.GetByID(ctx, organizationID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, in.ClientID)
	}
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser > 0", domain.ErrInvalidInput, i)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d].unit_price negativo", domain.ErrInvalidInput, i)
		}
	}
	if in.TaxRate.IsNegative() || in.DiscountPercentage.IsNegative() {
		return nil, fmt.Errorf("%w: tasas negativas", domain.ErrInvalidInput)
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:                 uuid.New().String(),
		OrganizationID:     organizationID,
		ClientID:           in.ClientID,
		ProjectID:          in.ProjectID,
		InvoiceNumber:      invoiceNumber(),
		Status:             entity.InvoiceStatusDraft,
		Currency:           in.Currency,
		TaxRate:            in.TaxRate,
		DiscountPercentage: in.DiscountPercentage,
		IssueDate:          now,
		DueDate:            in.DueDate,
		Notes:              in.Notes,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, it := range in.Items {
		lineSubtotal := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitType:    it.UnitType,
			UnitPrice:   it.UnitPrice,
			Subtotal:    lineSubtotal,
			CreatedAt:   now,
		})
	}
	invoice.Subtotal = subtotal
	invoice.TaxAmount, invoice.DiscountAmount, invoice.TotalAmount =
		computeInvoiceTotals(subtotal, in.TaxRate, in.DiscountPercentage)

	err = uc.tx.RunInvoice(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}
		return invoices.CreateItems(ctx, invoice.ID, items)
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		invoice.Items = append(invoice.Items, *it)
	}
	return toInvoiceResponse(invoice, nil), nil
}

// GetByID obtiene una factura con líneas y pagos.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	items, err := uc.repo.ListItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		invoice.Items = append(invoice.Items, *it)
	}
	payments, err := uc.repo.ListPayments(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, payments), nil
}

// List lista facturas (sin líneas) con filtros, orden y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, organizationID string, f repository.InvoiceFilter, q dto.ListQuery) ([]dto.InvoiceResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial de la cabecera. Solo facturas en draft.
func (uc *InvoiceUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	current, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status != entity.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: solo las facturas en draft se pueden editar", domain.ErrConflict)
	}
	patch := entity.InvoicePatch{
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		DueDate:   in.DueDate,
		Notes:     in.Notes,
	}
	invoice, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || invoice == nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, nil), nil
}

// transiciones válidas de estado de factura.
var invoiceTransitions = map[string][]string{
	entity.InvoiceStatusDraft:   {entity.InvoiceStatusSent, entity.InvoiceStatusCancelled},
	entity.InvoiceStatusSent:    {entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled},
	entity.InvoiceStatusOverdue: {entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, t := range invoiceTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ChangeStatus transición de estado. paid exige payment_method y payment_date
// y crea el registro de pago por el total en la misma transacción.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, organizationID, id string, in dto.InvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	if !transitionAllowed(invoice.Status, in.Status) {
		return nil, fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrConflict, invoice.Status, in.Status)
	}

	if in.Status == entity.InvoiceStatusPaid {
		if in.PaymentMethod == "" || in.PaymentDate == nil {
			return nil, fmt.Errorf("%w: payment_method y payment_date son obligatorios al marcar paid", domain.ErrInvalidInput)
		}
		payment := &entity.Payment{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Amount:      invoice.TotalAmount,
			Method:      in.PaymentMethod,
			PaymentDate: *in.PaymentDate,
			Reference:   in.Reference,
			CreatedAt:   time.Now(),
		}
		err = uc.tx.RunInvoice(ctx, func(invoices repository.InvoiceRepository) error {
			updated, err := invoices.UpdateStatus(ctx, organizationID, id, in.Status)
			if err != nil {
				return err
			}
			if updated == nil {
				return domain.ErrNotFound
			}
			return invoices.CreatePayment(ctx, payment)
		})
		if err != nil {
			return nil, err
		}
		return uc.GetByID(ctx, organizationID, id)
	}

	updated, err := uc.repo.UpdateStatus(ctx, organizationID, id, in.Status)
	if err != nil || updated == nil {
		return nil, err
	}
	return toInvoiceResponse(updated, nil), nil
}

// Delete baja lógica de la factura. Las pagadas no se borran.
func (uc *InvoiceUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.InvoiceResponse, error) {
	current, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status == entity.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: una factura pagada no se puede eliminar", domain.ErrConflict)
	}
	invoice, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, nil), nil
}

// Statistics agregados financieros del tenant.
func (uc *InvoiceUseCase) Statistics(ctx context.Context, organizationID string) (*dto.InvoiceStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceStatsResponse{
		Total:       stats.Total,
		ByStatus:    stats.ByStatus,
		Revenue:     stats.Revenue,
		Outstanding: stats.Outstanding,
	}, nil
}

// ConvertQuotation convierte una cotización accepted en una factura draft.
// Las líneas se copian y cotización+factura quedan ligadas en la misma tx.
func (uc *InvoiceUseCase) ConvertQuotation(ctx context.Context, organizationID, quotationID string, taxRate, discountPct decimal.Decimal) (*dto.InvoiceResponse, error) {
	quotation, err := uc.quotations.GetByID(ctx, organizationID, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, nil
	}
	if quotation.Status != entity.QuotationStatusAccepted {
		return nil, fmt.Errorf("%w: solo las cotizaciones accepted se convierten", domain.ErrConflict)
	}
	qItems, err := uc.quotations.ListItems(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if taxRate.IsNegative() || discountPct.IsNegative() {
		return nil, fmt.Errorf("%w: tasas negativas", domain.ErrInvalidInput)
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:                 uuid.New().String(),
		OrganizationID:     organizationID,
		ClientID:           quotation.ClientID,
		QuotationID:        quotation.ID,
		InvoiceNumber:      invoiceNumber(),
		Status:             entity.InvoiceStatusDraft,
		Currency:           quotation.Currency,
		TaxRate:            taxRate,
		DiscountPercentage: discountPct,
		IssueDate:          now,
		Notes:              quotation.Notes,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	items := make([]*entity.InvoiceItem, 0, len(qItems))
	subtotal := decimal.Zero
	for _, it := range qItems {
		lineSubtotal := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitType:    it.UnitType,
			UnitPrice:   it.UnitPrice,
			Subtotal:    lineSubtotal,
			CreatedAt:   now,
		})
	}
	invoice.Subtotal = subtotal
	invoice.TaxAmount, invoice.DiscountAmount, invoice.TotalAmount =
		computeInvoiceTotals(subtotal, taxRate, discountPct)

	err = uc.tx.RunConversion(ctx, func(quotations repository.QuotationRepository, invoices repository.InvoiceRepository) error {
		// Releer dentro de la tx: evita doble conversión concurrente.
		q, err := quotations.GetByID(ctx, organizationID, quotationID)
		if err != nil {
			return err
		}
		if q == nil || q.Status != entity.QuotationStatusAccepted {
			return fmt.Errorf("%w: la cotización cambió de estado", domain.ErrConflict)
		}
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}
		return invoices.CreateItems(ctx, invoice.ID, items)
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		invoice.Items = append(invoice.Items, *it)
	}
	return toInvoiceResponse(invoice, nil), nil
}

func toInvoiceResponse(inv *entity.Invoice, payments []*entity.Payment) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitType:    it.UnitType,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	pays := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		pays = append(pays, dto.PaymentResponse{
			ID:          p.ID,
			InvoiceID:   p.InvoiceID,
			Amount:      p.Amount,
			Method:      p.Method,
			PaymentDate: p.PaymentDate,
			Reference:   p.Reference,
			CreatedAt:   p.CreatedAt,
		})
	}
	resp := &dto.InvoiceResponse{
		ID:                 inv.ID,
		OrganizationID:     inv.OrganizationID,
		ClientID:           inv.ClientID,
		ProjectID:          inv.ProjectID,
		QuotationID:        inv.QuotationID,
		InvoiceNumber:      inv.InvoiceNumber,
		Status:             inv.Status,
		Currency:           inv.Currency,
		Subtotal:           inv.Subtotal,
		TaxRate:            inv.TaxRate,
		TaxAmount:          inv.TaxAmount,
		DiscountPercentage: inv.DiscountPercentage,
		DiscountAmount:     inv.DiscountAmount,
		TotalAmount:        inv.TotalAmount,
		IssueDate:          inv.IssueDate,
		DueDate:            inv.DueDate,
		Notes:              inv.Notes,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = items
	}
	if len(pays) > 0 {
		resp.Payments = pays
	}
	return resp
}
