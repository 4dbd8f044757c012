package model

// Product is a catalog entry. Prices are stored in the smallest currency
// unit (int64) so monetary math never touches floating point.
type Product struct {
	BaseModel
	Name      string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU       *string `gorm:"type:varchar(50);uniqueIndex" json:"sku,omitempty"`
	CostPrice int64   `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	SellPrice int64   `gorm:"not null;default:0" json:"sell_price" validate:"gte=0"`
	Stock     int     `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	IsActive  bool    `gorm:"not null;default:true" json:"is_active"`
}
