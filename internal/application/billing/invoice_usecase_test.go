package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrg = "11111111-1111-4111-8111-111111111111"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeClient(orgID string) *entity.Client {
	return &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           "Acme S.A.S.",
		TaxID:          "900123456-7",
		IsActive:       true,
	}
}

func draftInvoice(orgID, status string, total decimal.Decimal) *entity.Invoice {
	return &entity.Invoice{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ClientID:       uuid.New().String(),
		InvoiceNumber:  "INV-20260101-ABCD1234",
		Status:         status,
		Currency:       "COP",
		TotalAmount:    total,
		IsActive:       true,
	}
}

func newInvoiceUC(invoices *fakeInvoiceRepo, quotations *fakeQuotationRepo, clients *fakeClientRepo) *InvoiceUseCase {
	return NewInvoiceUseCase(invoices, quotations, clients, &fakeBillingTx{invoices: invoices, quotations: quotations})
}

// ─────────────────────────────────────────────
// Totales
// ─────────────────────────────────────────────

func TestComputeInvoiceTotals_DescuentoAntesDelImpuesto(t *testing.T) {
	// 1000 - 10% = 900 gravable; IVA 19% = 171; total 1071
	tax, discount, total := computeInvoiceTotals(dec("1000"), dec("19"), dec("10"))

	assert.True(t, discount.Equal(dec("100")), "descuento: %s", discount)
	assert.True(t, tax.Equal(dec("171")), "impuesto: %s", tax)
	assert.True(t, total.Equal(dec("1071")), "total: %s", total)
}

func TestComputeInvoiceTotals_SinTasas(t *testing.T) {
	tax, discount, total := computeInvoiceTotals(dec("500"), decimal.Zero, decimal.Zero)

	assert.True(t, tax.IsZero())
	assert.True(t, discount.IsZero())
	assert.True(t, total.Equal(dec("500")))
}

// ─────────────────────────────────────────────
// Transiciones de estado
// ─────────────────────────────────────────────

func TestTransitionAllowed(t *testing.T) {
	casos := []struct {
		from, to string
		ok       bool
	}{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, true},
		{entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusDraft, entity.InvoiceStatusPaid, false},
		{entity.InvoiceStatusSent, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusSent, entity.InvoiceStatusOverdue, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusSent, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, false},
		{entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.ok, transitionAllowed(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestChangeStatus_PaidCreaPagoPorElTotal(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusSent, dec("1071"))
	invoices := newFakeInvoiceRepo(inv)
	uc := newInvoiceUC(invoices, newFakeQuotationRepo(), newFakeClientRepo())
	fecha := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.ChangeStatus(context.Background(), testOrg, inv.ID, dto.InvoiceStatusRequest{
		Status:        entity.InvoiceStatusPaid,
		PaymentMethod: entity.PaymentMethodBankTransfer,
		PaymentDate:   &fecha,
		Reference:     "TRF-00123",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
	require.Len(t, resp.Payments, 1)
	assert.True(t, resp.Payments[0].Amount.Equal(dec("1071")), "el pago es por el total")
	assert.Equal(t, entity.PaymentMethodBankTransfer, resp.Payments[0].Method)
	assert.Equal(t, "TRF-00123", resp.Payments[0].Reference)
}

func TestChangeStatus_PaidSinMetodoDePago(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusSent, dec("100"))
	invoices := newFakeInvoiceRepo(inv)
	uc := newInvoiceUC(invoices, newFakeQuotationRepo(), newFakeClientRepo())

	resp, err := uc.ChangeStatus(context.Background(), testOrg, inv.ID, dto.InvoiceStatusRequest{
		Status: entity.InvoiceStatusPaid,
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, invoices.payments[inv.ID], "sin pago registrado")
	assert.Equal(t, entity.InvoiceStatusSent, inv.Status, "el estado no cambia")
}

func TestChangeStatus_TransicionInvalida(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusDraft, dec("100"))
	uc := newInvoiceUC(newFakeInvoiceRepo(inv), newFakeQuotationRepo(), newFakeClientRepo())
	fecha := time.Now()

	resp, err := uc.ChangeStatus(context.Background(), testOrg, inv.ID, dto.InvoiceStatusRequest{
		Status:        entity.InvoiceStatusPaid,
		PaymentMethod: entity.PaymentMethodBankTransfer,
		PaymentDate:   &fecha,
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ─────────────────────────────────────────────
// Create / Update / Delete
// ─────────────────────────────────────────────

func TestInvoiceCreate_CalculaTotales(t *testing.T) {
	client := activeClient(testOrg)
	invoices := newFakeInvoiceRepo()
	uc := newInvoiceUC(invoices, newFakeQuotationRepo(), newFakeClientRepo(client))

	resp, err := uc.Create(context.Background(), testOrg, dto.CreateInvoiceRequest{
		ClientID:           client.ID,
		TaxRate:            dec("19"),
		DiscountPercentage: dec("10"),
		Items: []dto.InvoiceItemRequest{
			{Description: "desarrollo", Quantity: dec("10"), UnitType: entity.UnitHour, UnitPrice: dec("100")},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.Equal(t, "COP", resp.Currency)
	assert.True(t, resp.Subtotal.Equal(dec("1000")))
	assert.True(t, resp.DiscountAmount.Equal(dec("100")))
	assert.True(t, resp.TaxAmount.Equal(dec("171")))
	assert.True(t, resp.TotalAmount.Equal(dec("1071")))
	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{8}$`, resp.InvoiceNumber)
	assert.Len(t, invoices.items[resp.ID], 1)
}

func TestInvoiceCreate_ClienteInexistente(t *testing.T) {
	uc := newInvoiceUC(newFakeInvoiceRepo(), newFakeQuotationRepo(), newFakeClientRepo())

	resp, err := uc.Create(context.Background(), testOrg, dto.CreateInvoiceRequest{
		ClientID: uuid.New().String(),
		Items:    []dto.InvoiceItemRequest{{Description: "x", Quantity: dec("1"), UnitType: entity.UnitUnit, UnitPrice: dec("10")}},
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUpdate_SoloDraft(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusSent, dec("100"))
	uc := newInvoiceUC(newFakeInvoiceRepo(inv), newFakeQuotationRepo(), newFakeClientRepo())
	notas := "ajuste"

	resp, err := uc.Update(context.Background(), testOrg, inv.ID, dto.UpdateInvoiceRequest{Notes: &notas})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvoiceDelete_PagadaNoSeBorra(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusPaid, dec("100"))
	uc := newInvoiceUC(newFakeInvoiceRepo(inv), newFakeQuotationRepo(), newFakeClientRepo())

	resp, err := uc.Delete(context.Background(), testOrg, inv.ID)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, inv.IsActive)
}

func TestInvoiceDelete_Draft(t *testing.T) {
	inv := draftInvoice(testOrg, entity.InvoiceStatusDraft, dec("100"))
	uc := newInvoiceUC(newFakeInvoiceRepo(inv), newFakeQuotationRepo(), newFakeClientRepo())

	resp, err := uc.Delete(context.Background(), testOrg, inv.ID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, inv.IsActive)
}

// ─────────────────────────────────────────────
// ConvertQuotation
// ─────────────────────────────────────────────

func acceptedQuotation(orgID string) *entity.Quotation {
	return &entity.Quotation{
		ID:              uuid.New().String(),
		OrganizationID:  orgID,
		ClientID:        uuid.New().String(),
		QuotationNumber: "QUO-20260101-ABCD1234",
		Status:          entity.QuotationStatusAccepted,
		Currency:        "USD",
		Notes:           "propuesta fase 1",
		IsActive:        true,
	}
}

func TestConvertQuotation_CopiaLineasYLiga(t *testing.T) {
	q := acceptedQuotation(testOrg)
	quotations := newFakeQuotationRepo(q)
	quotations.items[q.ID] = []*entity.QuotationItem{
		{ID: uuid.New().String(), QuotationID: q.ID, Description: "diseño", Quantity: dec("5"), UnitType: entity.UnitHour, UnitPrice: dec("80")},
		{ID: uuid.New().String(), QuotationID: q.ID, Description: "desarrollo", Quantity: dec("20"), UnitType: entity.UnitHour, UnitPrice: dec("100")},
	}
	invoices := newFakeInvoiceRepo()
	uc := newInvoiceUC(invoices, quotations, newFakeClientRepo())

	resp, err := uc.ConvertQuotation(context.Background(), testOrg, q.ID, dec("19"), decimal.Zero)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, q.ID, resp.QuotationID, "la factura queda ligada a la cotización")
	assert.Equal(t, q.ClientID, resp.ClientID)
	assert.Equal(t, "USD", resp.Currency, "hereda la moneda de la cotización")
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Subtotal.Equal(dec("2400")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TotalAmount.Equal(dec("2856")), "total: %s", resp.TotalAmount)
}

func TestConvertQuotation_SoloAccepted(t *testing.T) {
	q := acceptedQuotation(testOrg)
	q.Status = entity.QuotationStatusSent
	invoices := newFakeInvoiceRepo()
	uc := newInvoiceUC(invoices, newFakeQuotationRepo(q), newFakeClientRepo())

	resp, err := uc.ConvertQuotation(context.Background(), testOrg, q.ID, decimal.Zero, decimal.Zero)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, invoices.invoices)
}

func TestConvertQuotation_Inexistente(t *testing.T) {
	uc := newInvoiceUC(newFakeInvoiceRepo(), newFakeQuotationRepo(), newFakeClientRepo())

	resp, err := uc.ConvertQuotation(context.Background(), testOrg, uuid.New().String(), decimal.Zero, decimal.Zero)

	assert.NoError(t, err)
	assert.Nil(t, resp, "cotización inexistente se comporta como (nil, nil)")
}

func TestConvertQuotation_TasasNegativas(t *testing.T) {
	q := acceptedQuotation(testOrg)
	uc := newInvoiceUC(newFakeInvoiceRepo(), newFakeQuotationRepo(q), newFakeClientRepo())

	resp, err := uc.ConvertQuotation(context.Background(), testOrg, q.ID, dec("-1"), decimal.Zero)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────
// MarkOverdue (barrido del scheduler)
// ─────────────────────────────────────────────

func TestMarkOverdue_SoloSentVencidas(t *testing.T) {
	ayer := time.Now().Add(-24 * time.Hour)
	manana := time.Now().Add(24 * time.Hour)

	vencida := draftInvoice(testOrg, entity.InvoiceStatusSent, dec("100"))
	vencida.DueDate = &ayer
	vigente := draftInvoice(testOrg, entity.InvoiceStatusSent, dec("100"))
	vigente.DueDate = &manana
	borrador := draftInvoice(testOrg, entity.InvoiceStatusDraft, dec("100"))
	borrador.DueDate = &ayer

	invoices := newFakeInvoiceRepo(vencida, vigente, borrador)

	n, err := invoices.MarkOverdue(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, entity.InvoiceStatusOverdue, vencida.Status)
	assert.Equal(t, entity.InvoiceStatusSent, vigente.Status)
	assert.Equal(t, entity.InvoiceStatusDraft, borrador.Status)
}
