// Package validation envuelve go-playground/validator para validar los DTOs
// de entrada antes de que corra cualquier lógica de negocio.
//
// El contrato declarativo vive en los tags `validate` de cada request DTO
// (required, min/max, oneof, email, uuid4, dive sobre arrays de items...).
// La validación es síncrona y sin efectos secundarios: o devuelve nil, o una
// lista de violaciones por campo lista para serializar en la respuesta 400.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldViolation describe una restricción incumplida en un campo concreto.
type FieldViolation struct {
	Field   string `json:"field"`   // nombre JSON del campo (ej. "items[0].quantity")
	Rule    string `json:"rule"`    // tag que falló (required, oneof, min...)
	Message string `json:"message"` // razón legible
}

var (
	once   sync.Once
	shared *validator.Validate
)

// sharedValidator construye el validador una sola vez. Usa los nombres del
// tag `json` para que los errores hablen el idioma del API, no el de Go.
func sharedValidator() *validator.Validate {
	once.Do(func() {
		shared = validator.New(validator.WithRequiredStructEnabled())
		shared.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return shared
}

// Struct valida un DTO y devuelve las violaciones encontradas.
// nil significa entrada válida.
func Struct(s any) []FieldViolation {
	err := sharedValidator().Struct(s)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Se pasó algo que no es struct: error de programación, no del caller.
		return []FieldViolation{{Field: "_", Rule: "struct", Message: "entrada no validable"}}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Field: "_", Rule: "unknown", Message: err.Error()}}
	}
	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{
			Field:   jsonPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: violationMessage(fe),
		})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "uuid4", "uuid":
		return "debe ser un UUID válido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "debe ser como mínimo " + fe.Param()
	case "max":
		return "debe ser como máximo " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "datetime":
		return "debe tener formato " + fe.Param()
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}

// jsonPath convierte "CreateOrderRequest.Items[0].Quantity" en "items[0].quantity".
// El primer segmento (nombre del struct raíz) se descarta.
func jsonPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
