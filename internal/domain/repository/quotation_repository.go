package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// QuotationFilter filtros opcionales del listado de cotizaciones.
type QuotationFilter struct {
	Status   string
	ClientID string
	Query    string // busca en quotation_number y notes
}

// QuotationStats agregados para el widget de cotizaciones.
type QuotationStats struct {
	Total    int
	ByStatus map[string]int
}

// QuotationRepository puerto de persistencia para cotizaciones y sus líneas.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	CreateItems(ctx context.Context, quotationID string, items []*entity.QuotationItem) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Quotation, error)
	ListItems(ctx context.Context, quotationID string) ([]*entity.QuotationItem, error)
	List(ctx context.Context, organizationID string, f QuotationFilter, p Page, s Sort) ([]*entity.Quotation, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.QuotationPatch) (*entity.Quotation, error)
	UpdateStatus(ctx context.Context, organizationID, id, status string) (*entity.Quotation, error)
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Quotation, error)
	Statistics(ctx context.Context, organizationID string) (*QuotationStats, error)
}
