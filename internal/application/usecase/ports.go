package usecase

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta escrituras multi-paso dentro de una transacción.
// Un fallo en el callback revierte todo: nunca quedan líneas huérfanas.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orders repository.OrderRepository) error) error
	RunQuotation(ctx context.Context, fn func(quotations repository.QuotationRepository) error) error
}
