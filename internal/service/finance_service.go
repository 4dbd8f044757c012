package service

import (
	"errors"
	"fmt"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("cash transaction not found")

// CreateCashTransactionInput is a manual ledger entry. Entries made by the
// sale and receiving engines never pass through here.
type CreateCashTransactionInput struct {
	Type            model.CashTransactionType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Category        string                    `json:"category" validate:"required"`
	Amount          int64                     `json:"amount" validate:"required,gt=0"`
	Notes           string                    `json:"notes"`
	TransactionDate *time.Time                `json:"transaction_date"`
}

type FinanceService interface {
	CreateTransaction(input CreateCashTransactionInput) (*model.CashTransaction, error)
	ListTransactions(txType *model.CashTransactionType, startDate, endDate *time.Time, page, limit int) ([]model.CashTransaction, *repository.Meta, error)
	DeleteTransaction(id uuid.UUID) error
	GetSummary(startDate, endDate *time.Time) (*repository.FinanceSummary, error)
}

type financeService struct {
	financeRepo repository.FinanceRepository
	db          *gorm.DB
	now         func() time.Time
}

func NewFinanceService(financeRepo repository.FinanceRepository, db *gorm.DB) FinanceService {
	return &financeService{
		financeRepo: financeRepo,
		db:          db,
		now:         time.Now,
	}
}

func (s *financeService) CreateTransaction(input CreateCashTransactionInput) (*model.CashTransaction, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	transactionDate := s.now()
	if input.TransactionDate != nil {
		transactionDate = *input.TransactionDate
	}

	transaction := &model.CashTransaction{
		Type:            input.Type,
		Category:        input.Category,
		Amount:          input.Amount,
		Notes:           input.Notes,
		TransactionDate: transactionDate,
	}
	if err := s.financeRepo.Create(s.db, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *financeService) ListTransactions(txType *model.CashTransactionType, startDate, endDate *time.Time, page, limit int) ([]model.CashTransaction, *repository.Meta, error) {
	return s.financeRepo.FindAll(txType, startDate, endDate, page, limit)
}

func (s *financeService) DeleteTransaction(id uuid.UUID) error {
	if _, err := s.financeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return s.financeRepo.Delete(id)
}

func (s *financeService) GetSummary(startDate, endDate *time.Time) (*repository.FinanceSummary, error) {
	return s.financeRepo.GetSummary(startDate, endDate)
}
