package service

import (
	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceRecorder appends a PriceHistory record whenever a product's cost
// price actually changes. Equal prices are a silent no-op, so repeated syncs
// that find the same price do not pollute the audit trail.
type PriceRecorder interface {
	RecordIfChanged(tx *gorm.DB, productID uuid.UUID, oldPrice, newPrice float64, source model.PriceSource) error
}

type priceRecorder struct {
	priceHistoryRepo repository.PriceHistoryRepository
}

func NewPriceRecorder(priceHistoryRepo repository.PriceHistoryRepository) PriceRecorder {
	return &priceRecorder{priceHistoryRepo: priceHistoryRepo}
}

func (r *priceRecorder) RecordIfChanged(tx *gorm.DB, productID uuid.UUID, oldPrice, newPrice float64, source model.PriceSource) error {
	if oldPrice == newPrice {
		return nil
	}
	return r.priceHistoryRepo.Create(tx, &model.PriceHistory{
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Source:    source,
	})
}
