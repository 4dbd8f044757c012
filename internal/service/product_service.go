package service

import (
	"errors"
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSKUExists = errors.New("SKU already exists")

// CreateProductInput for new catalog entries
type CreateProductInput struct {
	Name      string  `json:"name" validate:"required"`
	SKU       *string `json:"sku"`
	CostPrice int64   `json:"cost_price" validate:"gte=0"`
	SellPrice int64   `json:"sell_price" validate:"gte=0"`
	Stock     int     `json:"stock" validate:"gte=0"`
}

// UpdateProductInput applies only the fields that are present
type UpdateProductInput struct {
	Name      *string `json:"name"`
	SKU       *string `json:"sku"`
	CostPrice *int64  `json:"cost_price"`
	SellPrice *int64  `json:"sell_price"`
	Stock     *int    `json:"stock"`
	IsActive  *bool   `json:"is_active"`
}

type ProductService interface {
	CreateProduct(input CreateProductInput) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input UpdateProductInput) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(search string, active *bool, page, limit int) ([]model.Product, *repository.Meta, error)
	// DeactivateProduct soft-deletes: sales history keeps its snapshots.
	DeactivateProduct(id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if input.CostPrice < 0 || input.SellPrice < 0 {
		return nil, errors.New("prices cannot be negative")
	}

	if input.SKU != nil && *input.SKU != "" {
		existing, err := s.productRepo.FindBySKU(*input.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSKUExists
		}
	}

	product := &model.Product{
		Name:      input.Name,
		SKU:       input.SKU,
		CostPrice: input.CostPrice,
		SellPrice: input.SellPrice,
		Stock:     input.Stock,
		IsActive:  true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, input UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	if input.SKU != nil && *input.SKU != "" && (product.SKU == nil || *product.SKU != *input.SKU) {
		existing, err := s.productRepo.FindBySKU(*input.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSKUExists
		}
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, errors.New("cost price cannot be negative")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.SellPrice != nil {
		if *input.SellPrice < 0 {
			return nil, errors.New("sell price cannot be negative")
		}
		product.SellPrice = *input.SellPrice
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errors.New("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(search string, active *bool, page, limit int) ([]model.Product, *repository.Meta, error) {
	return s.productRepo.FindAll(search, active, page, limit)
}

func (s *productService) DeactivateProduct(id uuid.UUID) error {
	return s.productRepo.Deactivate(id)
}
