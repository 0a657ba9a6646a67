package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name          string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU           string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode       *string `gorm:"type:varchar(50)" json:"barcode,omitempty"`
	Category      string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price         float64 `gorm:"not null" json:"price" validate:"required,gt=0"`
	CostPrice     float64 `gorm:"not null" json:"cost_price" validate:"required,gt=0"`
	StockQty      int     `gorm:"not null;default:0" json:"stock_qty" validate:"gte=0"`
	MinStockLevel int     `gorm:"not null;default:10" json:"min_stock_level" validate:"gte=0"`
	Currency      string  `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	// Audit trails
	StockLogs    []StockLog     `json:"stock_logs,omitempty" validate:"-"`
	PriceHistory []PriceHistory `json:"price_history,omitempty" validate:"-"`
}

// IsLowStock reports whether the product is strictly under its minimum level.
// A product exactly at MinStockLevel is not low stock.
func (p *Product) IsLowStock() bool {
	return p.StockQty < p.MinStockLevel
}
