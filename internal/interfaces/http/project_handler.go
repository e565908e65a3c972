package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ProjectHandler maneja las peticiones HTTP de proyectos.
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if !respondValidated(c, &in) {
		return nil
	}
	project, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "proyecto creado", project)
}

// GetByID GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	project, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if project == nil {
		return respondNotFound(c, "proyecto no encontrado")
	}
	return respondOK(c, "proyecto encontrado", project)
}

// List GET /api/projects?status=&priority=&client_id=&q=
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	f := repository.ProjectFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		ClientID: c.Query("client_id"),
		Query:    c.Query("q"),
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "proyectos listados", list, pagination)
}

// Update PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if !respondValidated(c, &in) {
		return nil
	}
	project, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if project == nil {
		return respondNotFound(c, "proyecto no encontrado")
	}
	return respondOK(c, "proyecto actualizado", project)
}

// ChangeStatus PATCH /api/projects/:id/status
func (h *ProjectHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ProjectStatusRequest
	if !respondValidated(c, &in) {
		return nil
	}
	project, err := h.uc.ChangeStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	if project == nil {
		return respondNotFound(c, "proyecto no encontrado")
	}
	return respondOK(c, "estado del proyecto actualizado", project)
}

// Delete DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	project, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if project == nil {
		return respondNotFound(c, "proyecto no encontrado")
	}
	return respondOK(c, "proyecto eliminado", project)
}

// Search GET /api/projects/search?q=&limit=
func (h *ProjectHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	list, err := h.uc.Search(c.Context(), GetOrganizationID(c), c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "búsqueda completada", list)
}

// Statistics GET /api/projects/statistics
func (h *ProjectHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de proyectos", stats)
}
