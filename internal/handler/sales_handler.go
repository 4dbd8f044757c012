package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// CreateSaleRequest is the POS checkout payload
type CreateSaleRequest struct {
	Items []service.CartItem `json:"items"`
}

// CreateSale handles POS checkout
// POST /api/v1/sales
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, ok := getUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.CreateSale(req.Items, userID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// ListSales returns paginated sales with optional date range
// GET /api/v1/sales
func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format"})
	}

	sales, meta, err := h.service.ListSales(startDate, endDate, page, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"data": sales, "meta": meta})
}

// GetSale returns one sale with its line items
// GET /api/v1/sales/:id
func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSaleByID(saleID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sale)
}

// GetSummary returns sales totals over a date range
// GET /api/v1/sales/summary
func (h *SalesHandler) GetSummary(c *fiber.Ctx) error {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format"})
	}

	summary, err := h.service.GetSummary(startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}
