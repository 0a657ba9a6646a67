package model

import "github.com/google/uuid"

type StockLogType string

const (
	StockIn         StockLogType = "IN"
	StockOut        StockLogType = "OUT"
	StockAdjustment StockLogType = "ADJUSTMENT"
)

// StockLog is an immutable record of a single stock movement. Quantity is the
// unsigned magnitude of the movement; direction is carried by Type.
type StockLog struct {
	BaseModel
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product     `json:"product,omitempty" validate:"-"`
	Type      StockLogType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int          `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Reason    string       `gorm:"type:varchar(255)" json:"reason"`
}

// SignedQuantity returns the movement as a signed delta for ledger replay.
// ADJUSTMENT rows are counted as increases.
func (l *StockLog) SignedQuantity() int {
	if l.Type == StockOut {
		return -l.Quantity
	}
	return l.Quantity
}
