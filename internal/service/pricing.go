package service

import "go-pos-backend/internal/model"

// PriceSnapshot holds the amounts derived from a product's prices at the
// instant of a transaction. All monetary math is int64 in the smallest
// currency unit; floating point would drift on accumulated totals.
type PriceSnapshot struct {
	Subtotal int64
	Profit   int64
}

// SnapshotPrice computes the line amounts for quantity units of a product
// using its current cost and sell price. Pure function, no I/O.
func SnapshotPrice(product *model.Product, quantity int) PriceSnapshot {
	qty := int64(quantity)
	return PriceSnapshot{
		Subtotal: product.SellPrice * qty,
		Profit:   (product.SellPrice - product.CostPrice) * qty,
	}
}
