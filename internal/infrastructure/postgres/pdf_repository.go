package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.PDFRepository = (*PDFRepo)(nil)

const pdfTemplateColumns = `id, organization_id, name, type, html_body, css_body, is_default,
	is_active, created_at, updated_at`

// PDFRepo implementación de PDFRepository.
type PDFRepo struct {
	q Querier
}

// NewPDFRepository construye el adaptador.
func NewPDFRepository(q Querier) *PDFRepo {
	return &PDFRepo{q: q}
}

func scanPDFTemplate(row pgx.Row) (*entity.PDFTemplate, error) {
	var tpl entity.PDFTemplate
	err := row.Scan(
		&tpl.ID, &tpl.OrganizationID, &tpl.Name, &tpl.Type, &tpl.HTMLBody, &tpl.CSSBody,
		&tpl.IsDefault, &tpl.IsActive, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// CreateTemplate persiste una plantilla de documento.
func (r *PDFRepo) CreateTemplate(ctx context.Context, tpl *entity.PDFTemplate) error {
	query := `
		INSERT INTO pdf_templates (id, organization_id, name, type, html_body, css_body, is_default,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		tpl.ID, tpl.OrganizationID, tpl.Name, tpl.Type, tpl.HTMLBody, tpl.CSSBody,
		tpl.IsDefault, tpl.IsActive, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pdf template: %w", err)
	}
	return nil
}

// GetTemplateByID obtiene una plantilla activa del tenant.
func (r *PDFRepo) GetTemplateByID(ctx context.Context, organizationID, id string) (*entity.PDFTemplate, error) {
	query := `SELECT ` + pdfTemplateColumns + `
		FROM pdf_templates WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	tpl, err := scanPDFTemplate(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pdf template: %w", err)
	}
	return tpl, nil
}

// ListTemplates lista plantillas del tenant, opcionalmente filtradas por tipo.
func (r *PDFRepo) ListTemplates(ctx context.Context, organizationID, pdfType string, p repository.Page) ([]*entity.PDFTemplate, int, error) {
	where := "WHERE organization_id = $1 AND is_active = TRUE"
	args := []any{organizationID}
	if pdfType != "" {
		args = append(args, pdfType)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM pdf_templates "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pdf templates: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM pdf_templates %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		pdfTemplateColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pdf templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.PDFTemplate
	for rows.Next() {
		tpl, err := scanPDFTemplate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pdf template: %w", err)
		}
		list = append(list, tpl)
	}
	return list, total, rows.Err()
}

// UpdateTemplate aplica un patch parcial sobre la plantilla.
func (r *PDFRepo) UpdateTemplate(ctx context.Context, organizationID, id string, patch entity.PDFTemplatePatch) (*entity.PDFTemplate, error) {
	set := newSetClause(id, organizationID)
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.HTMLBody != nil {
		set.Set("html_body", *patch.HTMLBody)
	}
	if patch.CSSBody != nil {
		set.Set("css_body", *patch.CSSBody)
	}
	if patch.IsDefault != nil {
		set.Set("is_default", *patch.IsDefault)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE pdf_templates SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update pdf template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetTemplateByID(ctx, organizationID, id)
}

// SoftDeleteTemplate marca la plantilla como inactiva y devuelve la fila previa.
func (r *PDFRepo) SoftDeleteTemplate(ctx context.Context, organizationID, id string) (*entity.PDFTemplate, error) {
	tpl, err := r.GetTemplateByID(ctx, organizationID, id)
	if err != nil || tpl == nil {
		return tpl, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE pdf_templates SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete pdf template: %w", err)
	}
	return tpl, nil
}

// CreateRecord registra la generación de un documento.
func (r *PDFRepo) CreateRecord(ctx context.Context, rec *entity.PDFRecord) error {
	query := `
		INSERT INTO pdf_records (id, organization_id, source_type, source_id, filename, size_bytes,
			generator, generated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.OrganizationID, rec.SourceType, rec.SourceID, rec.Filename, rec.SizeBytes,
		rec.Generator, rec.GeneratedBy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pdf record: %w", err)
	}
	return nil
}

// ListRecords devuelve el historial de documentos generados del tenant.
func (r *PDFRepo) ListRecords(ctx context.Context, organizationID string, p repository.Page) ([]*entity.PDFRecord, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM pdf_records WHERE organization_id = $1`, organizationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count pdf records: %w", err)
	}

	query := `
		SELECT id, organization_id, source_type, source_id, filename, size_bytes, generator, generated_by, created_at
		FROM pdf_records WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, organizationID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pdf records: %w", err)
	}
	defer rows.Close()

	var list []*entity.PDFRecord
	for rows.Next() {
		var rec entity.PDFRecord
		err := rows.Scan(&rec.ID, &rec.OrganizationID, &rec.SourceType, &rec.SourceID, &rec.Filename,
			&rec.SizeBytes, &rec.Generator, &rec.GeneratedBy, &rec.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pdf record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, total, rows.Err()
}
