package model

import (
	"time"

	"github.com/google/uuid"
)

// StockReceiving is one inbound inventory event: goods arrived, stock went
// up, money went out. Immutable once created.
type StockReceiving struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity    int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	CostPerItem int64     `gorm:"not null" json:"cost_per_item"`
	TotalCost   int64     `gorm:"not null" json:"total_cost"` // quantity * cost_per_item
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	ReceivedAt  time.Time `gorm:"not null;index" json:"received_at"`
}
