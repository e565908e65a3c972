package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Querier abstrae pool y transacción: todo repositorio funciona sobre ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// setClause acumula asignaciones "col = $n" para UPDATEs parciales.
// Los nombres de columna son siempre literales del repositorio, nunca del
// caller; los valores van parametrizados.
type setClause struct {
	parts []string
	args  []any
}

// newSetClause siembra los argumentos fijos del WHERE (id, organization_id...).
func newSetClause(seed ...any) *setClause {
	return &setClause{args: seed}
}

// Set añade una asignación con el siguiente placeholder libre.
func (s *setClause) Set(col string, v any) {
	s.args = append(s.args, v)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

// Empty indica que el patch no traía ningún campo.
func (s *setClause) Empty() bool { return len(s.parts) == 0 }

// SQL devuelve la lista de asignaciones separada por comas.
func (s *setClause) SQL() string { return strings.Join(s.parts, ", ") }

// Args devuelve seed + valores en orden de placeholder.
func (s *setClause) Args() []any { return s.args }

// orderBy resuelve sort_by contra la whitelist de columnas del repositorio.
// Un sort_by desconocido cae a created_at; el orden por defecto es DESC.
func orderBy(allowed map[string]string, s repository.Sort) string {
	col, ok := allowed[s.By]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(s.Order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// derefStr devuelve "" si el puntero es nil (columnas opcionales al leer).
func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
