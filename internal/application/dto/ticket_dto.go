package dto

import "time"

// CreateTicketRequest entrada para abrir un ticket de soporte.
type CreateTicketRequest struct {
	ClientID       string `json:"client_id" validate:"required,uuid4"`
	Subject        string `json:"subject" validate:"required,min=3,max=300"`
	Description    string `json:"description" validate:"omitempty,max=5000"`
	Priority       string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category       string `json:"category" validate:"omitempty,oneof=technical billing general feature_request"`
	AssignedUserID string `json:"assigned_user_id" validate:"omitempty,uuid4"`
}

// UpdateTicketRequest entrada de actualización parcial (nil = sin cambio).
type UpdateTicketRequest struct {
	Subject        *string `json:"subject" validate:"omitempty,min=3,max=300"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	Status         *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed cancelled"`
	Priority       *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category       *string `json:"category" validate:"omitempty,oneof=technical billing general feature_request"`
	AssignedUserID *string `json:"assigned_user_id" validate:"omitempty,uuid4"`
}

// TicketStatusRequest cambio de estado vía PATCH /tickets/:id/status.
type TicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed cancelled"`
}

// CreateTicketMessageRequest respuesta en el hilo del ticket.
type CreateTicketMessageRequest struct {
	ParentMessageID string `json:"parent_message_id" validate:"omitempty,uuid4"`
	Body            string `json:"body" validate:"required,min=1,max=10000"`
	IsInternal      bool   `json:"is_internal"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ClientID       string    `json:"client_id"`
	Subject        string    `json:"subject"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Category       string    `json:"category"`
	AssignedUserID string    `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TicketMessageResponse salida de un mensaje del hilo.
type TicketMessageResponse struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticket_id"`
	AuthorUserID    string    `json:"author_user_id"`
	ParentMessageID string    `json:"parent_message_id,omitempty"`
	Body            string    `json:"body"`
	IsInternal      bool      `json:"is_internal"`
	CreatedAt       time.Time `json:"created_at"`
}

// TicketStatsResponse agregados de soporte.
type TicketStatsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}
