package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/analytics"
)

// AnalyticsHandler maneja el dashboard y las series temporales.
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.uc.GetDashboard(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "dashboard", dashboard)
}

// Revenue GET /api/analytics/revenue?period=month&from=&to=
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	from, to := parseDateRange(c)
	series, err := h.uc.GetRevenueSeries(c.Context(), GetOrganizationID(c), c.Query("period", "month"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "serie de ingresos", series)
}

// Growth GET /api/analytics/growth?period=month&from=&to=
func (h *AnalyticsHandler) Growth(c *fiber.Ctx) error {
	from, to := parseDateRange(c)
	series, err := h.uc.GetGrowthSeries(c.Context(), GetOrganizationID(c), c.Query("period", "month"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "serie de crecimiento", series)
}

// parseDateRange acepta RFC3339 o fecha simple (2006-01-02); zero value si falta.
func parseDateRange(c *fiber.Ctx) (from, to time.Time) {
	return parseFlexTime(c.Query("from")), parseFlexTime(c.Query("to"))
}

func parseFlexTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
