package model

import "github.com/google/uuid"

type PurchaseOrderStatus string

const (
	POStatusPending   PurchaseOrderStatus = "PENDING"
	POStatusApproved  PurchaseOrderStatus = "APPROVED"
	POStatusReceived  PurchaseOrderStatus = "RECEIVED"
	POStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// poTransitions is the full set of legal status changes. RECEIVED and
// CANCELLED are terminal, which also makes receipt idempotent at the order
// level: a second transition into RECEIVED fails before any stock movement.
var poTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	POStatusPending:  {POStatusApproved, POStatusCancelled},
	POStatusApproved: {POStatusReceived},
}

// CanTransitionTo reports whether a status change is legal.
func (s PurchaseOrderStatus) CanTransitionTo(to PurchaseOrderStatus) bool {
	for _, allowed := range poTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of the known states.
func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case POStatusPending, POStatusApproved, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

type PurchaseOrder struct {
	BaseModel
	OrderNumber string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	SupplierID  uuid.UUID           `gorm:"type:uuid;not null" json:"supplier_id" validate:"uuid_required"`
	Supplier    *Supplier           `json:"supplier,omitempty" validate:"-"`
	CreatedByID uuid.UUID           `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User               `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty" validate:"-"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalAmount float64             `gorm:"not null" json:"total_amount"`
	Notes       string              `gorm:"type:text" json:"notes"`

	Items []PurchaseOrderItem `json:"items,omitempty" validate:"required,min=1,dive"`
}

type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product         *Product  `json:"product,omitempty" validate:"-"`
	Quantity        int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price" validate:"required,gt=0"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
}
