package dto

import "github.com/jhoicas/Gestion-api/pkg/validation"

// Response es el sobre uniforme de toda respuesta del API:
// {success, message, data?, pagination?, errors?}.
// Los handlers solo producen este tipo; no hay respuestas ad hoc.
type Response struct {
	Success    bool                        `json:"success"`
	Message    string                      `json:"message"`
	Data       any                         `json:"data,omitempty"`
	Pagination *Pagination                 `json:"pagination,omitempty"`
	Errors     []validation.FieldViolation `json:"errors,omitempty"`
}

// Pagination metadatos de página en listados.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula totalPages = ceil(total/limit).
func NewPagination(page, limit, total int) *Pagination {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Límites de paginación de los listados.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ListQuery parámetros comunes de listado ya normalizados por el handler.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize aplica defaults y acota el límite.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		q.SortOrder = "desc"
	}
}

// Offset devuelve el desplazamiento equivalente a la página pedida.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
