package repository

import (
	"go-inventory-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceHistoryRepository interface {
	Create(tx *gorm.DB, record *model.PriceHistory) error
	FindByProduct(productID uuid.UUID, limit int) ([]model.PriceHistory, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
}

type priceHistoryRepo struct {
	db *gorm.DB
}

func NewPriceHistoryRepo(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepo{db}
}

func (r *priceHistoryRepo) Create(tx *gorm.DB, record *model.PriceHistory) error {
	return tx.Create(record).Error
}

func (r *priceHistoryRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.PriceHistory, error) {
	var records []model.PriceHistory
	query := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *priceHistoryRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.PriceHistory{}, "product_id = ?", productID).Error
}
