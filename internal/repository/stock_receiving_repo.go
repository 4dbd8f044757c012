package repository

import (
	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockReceivingRepository interface {
	// Create inserts the receiving record inside the caller's transaction.
	Create(tx *gorm.DB, receiving *model.StockReceiving) error
	FindAll(productID *uuid.UUID, page, limit int) ([]model.StockReceiving, *Meta, error)
	FindByID(id uuid.UUID) (*model.StockReceiving, error)
}

type stockReceivingRepo struct {
	db *gorm.DB
}

func NewStockReceivingRepo(db *gorm.DB) StockReceivingRepository {
	return &stockReceivingRepo{db}
}

func (r *stockReceivingRepo) Create(tx *gorm.DB, receiving *model.StockReceiving) error {
	return tx.Create(receiving).Error
}

func (r *stockReceivingRepo) FindAll(productID *uuid.UUID, page, limit int) ([]model.StockReceiving, *Meta, error) {
	query := r.db.Model(&model.StockReceiving{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var receivings []model.StockReceiving
	err := query.
		Preload("Product").
		Order("received_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&receivings).Error
	if err != nil {
		return nil, nil, err
	}

	return receivings, newMeta(total, page, limit), nil
}

func (r *stockReceivingRepo) FindByID(id uuid.UUID) (*model.StockReceiving, error) {
	var receiving model.StockReceiving
	if err := r.db.Preload("Product").First(&receiving, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receiving, nil
}
