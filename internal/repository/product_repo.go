package repository

import (
	"go-inventory-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search     string
	Category   string
	SupplierID *uuid.UUID
	LowStock   bool
	Page       int
	Limit      int
}

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDWithSupplier(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindLowStock(limit int) ([]model.Product, error)
	FindSyncEligible() ([]model.Product, error)
	Update(tx *gorm.DB, product *model.Product) error
	UpdateFields(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.LowStock {
		query = query.Where("stock_qty < min_stock_level")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	err := query.Preload("Supplier").Order("created_at DESC").Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByIDWithSupplier(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Supplier").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

// FindLowStock returns products strictly under their minimum stock level,
// lowest stock first.
func (r *productRepo) FindLowStock(limit int) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("Supplier").
		Where("stock_qty < min_stock_level").
		Order("stock_qty ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&products).Error
	return products, err
}

// FindSyncEligible returns products whose supplier has an API base URL.
func (r *productRepo) FindSyncEligible() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Supplier").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Where("suppliers.api_base_url IS NOT NULL AND suppliers.api_base_url <> ''").
		Order("products.created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) UpdateFields(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}
