package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinanceSummary totals the cash ledger over a date range
type FinanceSummary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	NetCashFlow  int64 `json:"net_cash_flow"`
}

type FinanceRepository interface {
	// Create appends one ledger entry. Pass a transaction handle to make
	// the entry atomic with other writes, or the base DB for manual entries.
	Create(tx *gorm.DB, transaction *model.CashTransaction) error
	FindAll(txType *model.CashTransactionType, startDate, endDate *time.Time, page, limit int) ([]model.CashTransaction, *Meta, error)
	FindByID(id uuid.UUID) (*model.CashTransaction, error)
	Delete(id uuid.UUID) error
	GetSummary(startDate, endDate *time.Time) (*FinanceSummary, error)
}

type financeRepo struct {
	db *gorm.DB
}

func NewFinanceRepo(db *gorm.DB) FinanceRepository {
	return &financeRepo{db}
}

func (r *financeRepo) Create(tx *gorm.DB, transaction *model.CashTransaction) error {
	return tx.Create(transaction).Error
}

func (r *financeRepo) FindAll(txType *model.CashTransactionType, startDate, endDate *time.Time, page, limit int) ([]model.CashTransaction, *Meta, error) {
	query := dateRangeQuery(r.db.Model(&model.CashTransaction{}), "transaction_date", startDate, endDate)
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var transactions []model.CashTransaction
	err := query.
		Order("transaction_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, nil, err
	}

	return transactions, newMeta(total, page, limit), nil
}

func (r *financeRepo) FindByID(id uuid.UUID) (*model.CashTransaction, error) {
	var transaction model.CashTransaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *financeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.CashTransaction{}, "id = ?", id).Error
}

func (r *financeRepo) GetSummary(startDate, endDate *time.Time) (*FinanceSummary, error) {
	var summary FinanceSummary

	err := dateRangeQuery(r.db.Model(&model.CashTransaction{}), "transaction_date", startDate, endDate).
		Where("type = ?", model.TxIncome).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalIncome).Error
	if err != nil {
		return nil, err
	}

	err = dateRangeQuery(r.db.Model(&model.CashTransaction{}), "transaction_date", startDate, endDate).
		Where("type = ?", model.TxExpense).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalExpense).Error
	if err != nil {
		return nil, err
	}

	summary.NetCashFlow = summary.TotalIncome - summary.TotalExpense
	return &summary, nil
}
