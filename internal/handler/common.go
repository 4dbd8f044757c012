package handler

import (
	"errors"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to pull the authenticated user ID from the JWT context
// (set by the RequireAuth middleware)
func getUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	return userID, ok
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parsePagination reads ?page= and ?limit= with the API defaults
func parsePagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// parseDateRange reads optional ?start_date= and ?end_date= (RFC 3339 or
// plain YYYY-MM-DD)
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	startDate, err := parse(c.Query("start_date"))
	if err != nil {
		return nil, nil, err
	}
	endDate, err := parse(c.Query("end_date"))
	if err != nil {
		return nil, nil, err
	}
	return startDate, endDate, nil
}

// statusForError maps the service error taxonomy onto HTTP statuses
func statusForError(err error) int {
	var stockErr *model.InsufficientStockError
	switch {
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &stockErr),
		errors.Is(err, model.ErrEmptySale),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidCost),
		errors.Is(err, model.ErrProductInactive),
		errors.Is(err, service.ErrSKUExists),
		errors.Is(err, service.ErrInvalidOtp),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyVerified):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrConcurrencyConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified):
		return fiber.StatusUnauthorized
	default:
		// Infrastructure failures (store unreachable, commit failed)
		return fiber.StatusInternalServerError
	}
}
