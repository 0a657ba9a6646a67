package model

import "github.com/google/uuid"

type PriceSource string

const (
	PriceSourceManual       PriceSource = "MANUAL"
	PriceSourceSupplierSync PriceSource = "SUPPLIER_SYNC"
)

// PriceHistory is an immutable record of a cost price change.
type PriceHistory struct {
	BaseModel
	ProductID uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product    `json:"product,omitempty"`
	OldPrice  float64     `gorm:"not null" json:"old_price"`
	NewPrice  float64     `gorm:"not null" json:"new_price"`
	Source    PriceSource `gorm:"type:varchar(20);not null" json:"source"`
}
