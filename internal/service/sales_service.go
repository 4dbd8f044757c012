package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSaleNotFound = errors.New("sale not found")

// CartItem is one requested line of a sale
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type SalesService interface {
	// CreateSale validates the cart against current catalog state, then
	// atomically persists the sale with price snapshots, decrements stock,
	// and appends the matching income ledger entry.
	CreateSale(items []CartItem, createdBy uuid.UUID) (*model.SaleResponse, error)
	ListSales(startDate, endDate *time.Time, page, limit int) ([]model.SaleResponse, *repository.Meta, error)
	GetSaleByID(id uuid.UUID) (*model.SaleResponse, error)
	GetSummary(startDate, endDate *time.Time) (*repository.SaleSummary, error)
}

type salesService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	financeRepo repository.FinanceRepository
	db          *gorm.DB
	now         func() time.Time
}

func NewSalesService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository,
	financeRepo repository.FinanceRepository, db *gorm.DB) SalesService {
	return &salesService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		financeRepo: financeRepo,
		db:          db,
		now:         time.Now,
	}
}

// saleRef is the short reference embedded in the ledger notes, linking the
// income entry to its sale by convention rather than foreign key.
func saleRef(id uuid.UUID) string {
	s := strings.ReplaceAll(id.String(), "-", "")
	return strings.ToUpper(s[len(s)-8:])
}

func (s *salesService) CreateSale(items []CartItem, createdBy uuid.UUID) (*model.SaleResponse, error) {
	if len(items) == 0 {
		return nil, model.ErrEmptySale
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", model.ErrInvalidQuantity, item.ProductID)
		}
	}

	// Aggregate quantities per product so duplicate cart lines count
	// against stock together, not each against the same stale read.
	required := make(map[uuid.UUID]int, len(items))
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, seen := required[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		required[item.ProductID] += item.Quantity
	}

	// 1. One batch read of every referenced product
	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	// 2. Validate in cart order and snapshot prices. All business-rule
	// failures surface here, before anything is written.
	saleItems := make([]model.SaleItem, 0, len(items))
	var totalAmount, totalProfit int64
	for i, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: %q", model.ErrProductInactive, product.Name)
		}
		if need := required[item.ProductID]; product.Stock < need {
			return nil, &model.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   need,
			}
		}

		snapshot := SnapshotPrice(&product, item.Quantity)
		totalAmount += snapshot.Subtotal
		totalProfit += snapshot.Profit

		saleItems = append(saleItems, model.SaleItem{
			LineNo:              i + 1,
			ProductID:           product.ID,
			ProductNameSnapshot: product.Name,
			Quantity:            item.Quantity,
			CostPriceSnapshot:   product.CostPrice,
			SellPriceSnapshot:   product.SellPrice,
		})
	}

	sale := &model.Sale{
		TransactionDate: s.now(),
		TotalAmount:     totalAmount,
		TotalProfit:     totalProfit,
		CreatedByUserID: createdBy,
		Items:           saleItems,
	}

	// 3. One atomic unit: sale + items, stock decrements, income entry.
	// Snapshots from the validation phase are written as-is; prices are
	// never re-read inside the transaction.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return fmt.Errorf("failed to persist sale: %w", err)
		}

		// The accessor re-asserts stock with a conditional update, so a
		// concurrent sale that won the race fails this one cleanly here.
		for _, id := range productIDs {
			if err := s.productRepo.DecrementStock(tx, id, required[id]); err != nil {
				return err
			}
		}

		income := &model.CashTransaction{
			Type:            model.TxIncome,
			Category:        model.CategorySales,
			Amount:          totalAmount,
			Notes:           fmt.Sprintf("POS sale #%s", saleRef(sale.ID)),
			TransactionDate: s.now(),
		}
		if err := s.financeRepo.Create(tx, income); err != nil {
			return fmt.Errorf("failed to record income entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := sale.ToResponse()
	return &response, nil
}

func (s *salesService) ListSales(startDate, endDate *time.Time, page, limit int) ([]model.SaleResponse, *repository.Meta, error) {
	sales, meta, err := s.saleRepo.FindAll(startDate, endDate, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]model.SaleResponse, len(sales))
	for i := range sales {
		responses[i] = sales[i].ToResponse()
	}
	return responses, meta, nil
}

func (s *salesService) GetSaleByID(id uuid.UUID) (*model.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	response := sale.ToResponse()
	return &response, nil
}

func (s *salesService) GetSummary(startDate, endDate *time.Time) (*repository.SaleSummary, error) {
	return s.saleRepo.GetSummary(startDate, endDate)
}
