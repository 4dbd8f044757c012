package handler

import (
	"time"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetDashboard returns everything the admin dashboard needs in one call
// GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.GetDashboard()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(dashboard)
}

// reportRange defaults to the last 30 days when the query is empty
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end := time.Now()
	if endDate != nil {
		end = *endDate
	}
	start := end.AddDate(0, 0, -30)
	if startDate != nil {
		start = *startDate
	}
	return start, end, nil
}

// GetSalesReport returns sales totals and the daily breakdown
// GET /api/v1/analytics/sales
func (h *AnalyticsHandler) GetSalesReport(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format"})
	}

	report, err := h.service.GetSalesReport(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

// GetProfitLossReport returns the profit and loss statement
// GET /api/v1/analytics/profit-loss
func (h *AnalyticsHandler) GetProfitLossReport(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format"})
	}

	report, err := h.service.GetProfitLossReport(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}
