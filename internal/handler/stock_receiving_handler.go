package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockReceivingHandler struct {
	service service.StockReceivingService
}

func NewStockReceivingHandler(s service.StockReceivingService) *StockReceivingHandler {
	return &StockReceivingHandler{service: s}
}

// ReceiveStock records an inbound goods batch
// POST /api/v1/stock-receivings
func (h *StockReceivingHandler) ReceiveStock(c *fiber.Ctx) error {
	var input service.ReceiveStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receiving, err := h.service.ReceiveStock(input)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock received", "data": receiving})
}

// ListReceivings returns paginated receivings, optionally for one product
// GET /api/v1/stock-receivings
func (h *StockReceivingHandler) ListReceivings(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	receivings, meta, err := h.service.ListReceivings(productID, page, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"data": receivings, "meta": meta})
}
