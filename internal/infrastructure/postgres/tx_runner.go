package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ usecase.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con el repositorio de órdenes atado a la tx.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q))
	})
}

// RunQuotation inicia una transacción con el repositorio de cotizaciones.
func (r *TxRunner) RunQuotation(ctx context.Context, fn func(quotations repository.QuotationRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuotationRepository(q))
	})
}

// RunInvoice inicia una transacción con el repositorio de facturas.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInvoiceRepository(q))
	})
}

// RunConversion inicia una transacción con cotizaciones y facturas (convert).
func (r *TxRunner) RunConversion(ctx context.Context, fn func(quotations repository.QuotationRepository, invoices repository.InvoiceRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuotationRepository(q), NewInvoiceRepository(q))
	})
}
