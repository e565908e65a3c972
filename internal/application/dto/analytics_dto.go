package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen multi-entidad del dashboard. Se construye con
// cinco lecturas concurrentes; si cualquiera falla, la operación entera
// devuelve error (nunca totales parciales silenciosos).
type DashboardResponse struct {
	Clients  ClientStatsResponse    `json:"clients"`
	Projects ProjectStatsResponse   `json:"projects"`
	Orders   OrderStatsResponse     `json:"orders"`
	Tickets  TicketStatsResponse    `json:"tickets"`
	Invoices InvoiceStatsResponse   `json:"invoices"`
}

// PeriodBucketResponse un punto de una serie temporal.
type PeriodBucketResponse struct {
	Period string          `json:"period"`
	Count  int             `json:"count"`
	Value  decimal.Decimal `json:"value"`
}

// RevenueSeriesResponse serie de ingresos agrupada por período.
type RevenueSeriesResponse struct {
	Period  string                 `json:"period"` // day|week|month|year
	Buckets []PeriodBucketResponse `json:"buckets"`
}

// GrowthSeriesResponse timeline combinado de altas por entidad.
// Combined colapsa los períodos de todas las entidades bajo una clave común.
type GrowthSeriesResponse struct {
	Period   string                            `json:"period"`
	ByEntity map[string][]PeriodBucketResponse `json:"by_entity"`
	Combined []PeriodBucketResponse            `json:"combined"`
}
