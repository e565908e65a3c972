package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un proyecto.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Prioridades compartidas por proyectos y tickets.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Project representa un compromiso de trabajo ligado a un cliente.
// Budget siempre va acompañado de Currency; nunca se mezclan monedas.
type Project struct {
	ID             string
	OrganizationID string
	ClientID       string
	Name           string
	Description    string
	Status         string // ver constantes ProjectStatus*
	Priority       string // ver constantes Priority*
	Budget         decimal.Decimal
	Currency       string // código ISO 4217, ej. "COP", "USD"
	AssignedUserID string
	StartDate      *time.Time
	EndDate        *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectPatch campos actualizables de un proyecto (nil = sin cambio).
type ProjectPatch struct {
	Name           *string
	Description    *string
	Status         *string
	Priority       *string
	Budget         *decimal.Decimal
	Currency       *string
	AssignedUserID *string
	StartDate      *time.Time
	EndDate        *time.Time
}
