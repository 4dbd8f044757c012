package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleSummary aggregates committed sales over a date range
type SaleSummary struct {
	TotalAmount int64 `json:"total_amount"`
	TotalProfit int64 `json:"total_profit"`
	Count       int64 `json:"count"`
}

type SaleRepository interface {
	// Create inserts the sale header and its items inside the caller's
	// transaction. Item order follows the slice order (cart order).
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(startDate, endDate *time.Time, page, limit int) ([]model.Sale, *Meta, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	GetSummary(startDate, endDate *time.Time) (*SaleSummary, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func dateRangeQuery(query *gorm.DB, column string, startDate, endDate *time.Time) *gorm.DB {
	if startDate != nil {
		query = query.Where(column+" >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where(column+" <= ?", *endDate)
	}
	return query
}

func (r *saleRepo) FindAll(startDate, endDate *time.Time, page, limit int) ([]model.Sale, *Meta, error) {
	query := dateRangeQuery(r.db.Model(&model.Sale{}), "transaction_date", startDate, endDate)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var sales []model.Sale
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Order("transaction_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, nil, err
	}

	return sales, newMeta(total, page, limit), nil
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Preload("CreatedByUser").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) GetSummary(startDate, endDate *time.Time) (*SaleSummary, error) {
	var summary SaleSummary
	err := dateRangeQuery(r.db.Model(&model.Sale{}), "transaction_date", startDate, endDate).
		Select("COALESCE(SUM(total_amount), 0) as total_amount, COALESCE(SUM(total_profit), 0) as total_profit, COUNT(*) as count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
