package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/pkg/validation"
)

// Helpers de respuesta: todos los handlers producen el sobre dto.Response.

func respondOK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data})
}

func respondCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func respondPaged(c *fiber.Ctx, message string, data any, p *dto.Pagination) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data, Pagination: p})
}

func respondFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}

func respondNotFound(c *fiber.Ctx, message string) error {
	return respondFail(c, fiber.StatusNotFound, message)
}

func respondInvalidBody(c *fiber.Ctx) error {
	return respondFail(c, fiber.StatusBadRequest, "cuerpo de la petición inválido")
}

// respondValidated parsea el body en dst y valida sus tags. Devuelve false si
// ya se escribió una respuesta de error.
func respondValidated(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = respondInvalidBody(c)
		return false
	}
	if violations := validation.Struct(dst); violations != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Message: "la entrada no pasó validación",
			Errors:  violations,
		})
		return false
	}
	return true
}

// respondError mapea errores de dominio a códigos HTTP. Cualquier error no
// reconocido es un 500 con mensaje genérico (el detalle va al log, no al caller).
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyPatch):
		return respondFail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return respondFail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return respondFail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respondFail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrConflict):
		return respondFail(c, fiber.StatusConflict, err.Error())
	default:
		return respondFail(c, fiber.StatusInternalServerError, "error interno")
	}
}

// parseListQuery extrae ?page=&limit=&sort_by=&sort_order= con defaults.
func parseListQuery(c *fiber.Ctx) dto.ListQuery {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(dto.DefaultPageLimit)))
	q := dto.ListQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	q.Normalize()
	return q
}
