package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is one completed POS transaction. It is immutable once created:
// corrections are new transactions, never edits.
type Sale struct {
	BaseModel
	TransactionDate time.Time  `gorm:"not null;index" json:"transaction_date"`
	TotalAmount     int64      `gorm:"not null" json:"total_amount"`
	TotalProfit     int64      `gorm:"not null" json:"total_profit"`
	CreatedByUserID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_user_id"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	Items           []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem is one line of a sale. Name and prices are snapshots copied from
// the product at the moment the sale was persisted; they are never recomputed
// when the catalog changes later.
type SaleItem struct {
	BaseModel
	SaleID              uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	LineNo              int       `gorm:"not null" json:"line_no"` // cart order
	ProductID           uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	CostPriceSnapshot   int64     `gorm:"not null" json:"cost_price_snapshot"`
	SellPriceSnapshot   int64     `gorm:"not null" json:"sell_price_snapshot"`
}

// Subtotal is the line amount derived from the stored snapshot.
func (i *SaleItem) Subtotal() int64 {
	return i.SellPriceSnapshot * int64(i.Quantity)
}

// Profit is the line margin derived from the stored snapshots.
func (i *SaleItem) Profit() int64 {
	return (i.SellPriceSnapshot - i.CostPriceSnapshot) * int64(i.Quantity)
}

// SaleItemResponse adds the derived amounts to the stored snapshot fields.
type SaleItemResponse struct {
	SaleItem
	Subtotal int64 `json:"subtotal"`
	Profit   int64 `json:"profit"`
}

// SaleResponse is the API shape of a sale with derived per-line amounts.
type SaleResponse struct {
	Sale
	Items []SaleItemResponse `json:"items"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			SaleItem: item,
			Subtotal: item.Subtotal(),
			Profit:   item.Profit(),
		}
	}
	return SaleResponse{Sale: *s, Items: items}
}
