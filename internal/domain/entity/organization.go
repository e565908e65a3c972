package entity

import (
	"encoding/json"
	"time"
)

// Planes de suscripción disponibles.
const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanBusiness   = "business"
	PlanEnterprise = "enterprise"
)

// Organization representa el tenant raíz del sistema. Toda fila visible por
// una petición debe pertenecer a exactamente una organización.
// Nunca se borra físicamente: se desactiva con IsActive=false.
type Organization struct {
	ID            string
	Name          string
	TaxID         string
	Email         string
	Phone         string
	Address       string
	Plan          string // ver constantes Plan*
	MaxUsers      int
	MaxProjects   int
	Branding      json.RawMessage // white-label: logo, colores, dominio
	SSOConfig     json.RawMessage // configuración SSO embebida
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrganizationPatch campos actualizables de una organización (nil = sin cambio).
type OrganizationPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	Plan        *string
	MaxUsers    *int
	MaxProjects *int
	Branding    json.RawMessage
	SSOConfig   json.RawMessage
}
