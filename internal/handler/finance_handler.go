package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	service service.FinanceService
}

func NewFinanceHandler(s service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: s}
}

// ListTransactions returns the cash ledger with filters
// GET /api/v1/finance/transactions
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format"})
	}

	var txType *model.CashTransactionType
	switch c.Query("type") {
	case string(model.TxIncome):
		v := model.TxIncome
		txType = &v
	case string(model.TxExpense):
		v := model.TxExpense
		txType = &v
	}

	transactions, meta, err := h.service.ListTransactions(txType, startDate, endDate, page, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"data": transactions, "meta": meta})
}

// CreateTransaction appends a manual ledger entry
// POST /api/v1/finance/transactions
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var input service.CreateCashTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.CreateTransaction(input)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": transaction})
}

// DeleteTransaction removes a manual ledger entry
// DELETE /api/v1/finance/transactions/:id
func (h *FinanceHandler) DeleteTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.DeleteTransaction(txID); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

// GetSummary returns income/expense totals over a date range
// GET /api/v1/finance/summary
func (h *FinanceHandler) GetSummary(c *fiber.Ctx) error {
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
