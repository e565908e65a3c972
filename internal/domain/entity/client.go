package entity

import "time"

// Client representa un cliente (customer) de la organización.
type Client struct {
	ID             string
	OrganizationID string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	BillingAddress string
	City           string
	Country        string
	Industry       string
	Region         string
	Notes          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClientPatch campos actualizables de un cliente (nil = sin cambio).
type ClientPatch struct {
	Name           *string
	TaxID          *string
	Email          *string
	Phone          *string
	BillingAddress *string
	City           *string
	Country        *string
	Industry       *string
	Region         *string
	Notes          *string
}
