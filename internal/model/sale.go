package model

import "github.com/google/uuid"

// Sale is created exactly once per sale transaction and immutable thereafter.
type Sale struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id" validate:"uuid_required"`
	User      *User     `json:"user,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `gorm:"not null" json:"unit_price" validate:"required,gt=0"`
	Total     float64   `gorm:"not null" json:"total"`
}
