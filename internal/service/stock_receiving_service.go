package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiveStockInput is one inbound goods batch. CostPerItem may arrive
// fractional from the client; it is rounded to the nearest integer unit
// before any multiplication.
type ReceiveStockInput struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	CostPerItem float64   `json:"cost_per_item" validate:"gte=0"`
	Notes       string    `json:"notes"`
}

type StockReceivingService interface {
	// ReceiveStock atomically records the receiving, raises stock (and
	// refreshes the cost price), and appends the matching expense entry.
	ReceiveStock(input ReceiveStockInput) (*model.StockReceiving, error)
	ListReceivings(productID *uuid.UUID, page, limit int) ([]model.StockReceiving, *repository.Meta, error)
}

type stockReceivingService struct {
	productRepo   repository.ProductRepository
	receivingRepo repository.StockReceivingRepository
	financeRepo   repository.FinanceRepository
	db            *gorm.DB
	now           func() time.Time
}

func NewStockReceivingService(productRepo repository.ProductRepository,
	receivingRepo repository.StockReceivingRepository,
	financeRepo repository.FinanceRepository, db *gorm.DB) StockReceivingService {
	return &stockReceivingService{
		productRepo:   productRepo,
		receivingRepo: receivingRepo,
		financeRepo:   financeRepo,
		db:            db,
		now:           time.Now,
	}
}

func (s *stockReceivingService) ReceiveStock(input ReceiveStockInput) (*model.StockReceiving, error) {
	if input.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	if input.CostPerItem < 0 {
		return nil, model.ErrInvalidCost
	}

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, input.ProductID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	costPerItem := int64(math.Round(input.CostPerItem))
	totalCost := costPerItem * int64(input.Quantity)

	receiving := &model.StockReceiving{
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		CostPerItem: costPerItem,
		TotalCost:   totalCost,
		Notes:       input.Notes,
		ReceivedAt:  s.now(),
	}

	// Receiving record, stock increment, and expense entry land together
	// or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.receivingRepo.Create(tx, receiving); err != nil {
			return fmt.Errorf("failed to persist stock receiving: %w", err)
		}

		if err := s.productRepo.IncrementStock(tx, input.ProductID, input.Quantity, costPerItem); err != nil {
			return err
		}

		expense := &model.CashTransaction{
			Type:            model.TxExpense,
			Category:        model.CategoryGoodsPurchase,
			Amount:          totalCost,
			Notes:           fmt.Sprintf("Stock received: %s x %d", product.Name, input.Quantity),
			TransactionDate: s.now(),
		}
		if err := s.financeRepo.Create(tx, expense); err != nil {
			return fmt.Errorf("failed to record expense entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	receiving.Product = product
	return receiving, nil
}

func (s *stockReceivingService) ListReceivings(productID *uuid.UUID, page, limit int) ([]model.StockReceiving, *repository.Meta, error) {
	return s.receivingRepo.FindAll(productID, page, limit)
}
