package model

import "time"

type CashTransactionType string

const (
	TxIncome  CashTransactionType = "INCOME"
	TxExpense CashTransactionType = "EXPENSE"
)

// Ledger categories written automatically by the sale and stock-receiving
// engines. Manual entries carry free-text categories.
const (
	CategorySales         = "Sales"
	CategoryGoodsPurchase = "Goods Purchase"
)

// CashTransaction is one immutable ledger entry. Entries created by the
// engines reference their sale/receiving only through the notes text; there
// is deliberately no foreign key.
type CashTransaction struct {
	BaseModel
	Type            CashTransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Category        string              `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Amount          int64               `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Notes           string              `gorm:"type:text" json:"notes,omitempty"`
	TransactionDate time.Time           `gorm:"not null;index" json:"transaction_date"`
}
