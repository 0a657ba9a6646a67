package repository

import (
	"go-inventory-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLogRepository interface {
	Create(tx *gorm.DB, log *model.StockLog) error
	FindByProduct(productID uuid.UUID, limit int) ([]model.StockLog, error)
	ReplayQuantity(productID uuid.UUID) (int, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) Create(tx *gorm.DB, log *model.StockLog) error {
	return tx.Create(log).Error
}

func (r *stockLogRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.StockLog, error) {
	var logs []model.StockLog
	query := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// ReplayQuantity sums all recorded movements for a product from zero.
// OUT rows count negative, IN and ADJUSTMENT rows positive. The result must
// reconcile with the product's current stock quantity.
func (r *stockLogRepo) ReplayQuantity(productID uuid.UUID) (int, error) {
	var sum int
	err := r.db.Model(&model.StockLog{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -quantity ELSE quantity END), 0)", model.StockOut).
		Scan(&sum).Error
	return sum, err
}

func (r *stockLogRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.StockLog{}, "product_id = ?", productID).Error
}
