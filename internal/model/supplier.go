package model

type Supplier struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email string `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone string `gorm:"type:varchar(50);not null" json:"phone" validate:"required"`

	// Presence of an API base URL makes the supplier's products sync-eligible
	APIBaseURL *string `gorm:"type:varchar(500)" json:"api_base_url,omitempty" validate:"omitempty,url"`

	Products []Product `json:"products,omitempty" validate:"-"`
}

// SyncEnabled reports whether products of this supplier can be synced.
func (s *Supplier) SyncEnabled() bool {
	return s.APIBaseURL != nil && *s.APIBaseURL != ""
}
