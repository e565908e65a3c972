package entity

import "time"

// Estados del ciclo de vida de un ticket de soporte.
// cancelled es alcanzable desde cualquier estado no terminal.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
	TicketStatusCancelled  = "cancelled"
)

// Categorías de ticket.
const (
	TicketCategoryTechnical = "technical"
	TicketCategoryBilling   = "billing"
	TicketCategoryGeneral   = "general"
	TicketCategoryFeature   = "feature_request"
)

// Ticket representa una solicitud de soporte de un cliente.
type Ticket struct {
	ID             string
	OrganizationID string
	ClientID       string
	Subject        string
	Description    string
	Status         string // ver constantes TicketStatus*
	Priority       string // ver constantes Priority*
	Category       string // ver constantes TicketCategory*
	AssignedUserID string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TicketMessage un mensaje del hilo de un ticket. ParentMessageID forma el
// árbol de respuestas; IsInternal marca notas no visibles para el cliente.
type TicketMessage struct {
	ID              string
	TicketID        string
	AuthorUserID    string
	ParentMessageID string // vacío = mensaje raíz
	Body            string
	IsInternal      bool
	CreatedAt       time.Time
}

// TicketPatch campos actualizables de un ticket (nil = sin cambio).
type TicketPatch struct {
	Subject        *string
	Description    *string
	Status         *string
	Priority       *string
	Category       *string
	AssignedUserID *string
}
