package repository

import (
	"go-inventory-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(order *model.PurchaseOrder) error
	FindAll(page, limit int) ([]model.PurchaseOrder, int64, error)
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.PurchaseOrderStatus) error
	Delete(id uuid.UUID) error
	DeleteItemsByProduct(tx *gorm.DB, productID uuid.UUID) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(order *model.PurchaseOrder) error {
	// Items are created through the association in the same transaction
	return r.db.Create(order).Error
}

func (r *purchaseOrderRepo) FindAll(page, limit int) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	if err := r.db.Model(&model.PurchaseOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Preload("Supplier").Preload("CreatedBy").
		Preload("Items").Preload("Items.Product").
		Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Find(&orders).Error
	return orders, total, err
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.db.Preload("Supplier").Preload("CreatedBy").
		Preload("Items").Preload("Items.Product").
		First(&order, "id = ?", id).Error
	return &order, err
}

func (r *purchaseOrderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.PurchaseOrderStatus) error {
	return tx.Model(&model.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseOrderRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PurchaseOrderItem{}, "purchase_order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PurchaseOrder{}, "id = ?", id).Error
	})
}

func (r *purchaseOrderRepo) DeleteItemsByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.PurchaseOrderItem{}, "product_id = ?", productID).Error
}
