package repository

import (
	"go-inventory-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlySalesData for the dashboard revenue chart
type MonthlySalesData struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(page, limit int) ([]model.Sale, int64, error)
	FindRecent(limit int) ([]model.Sale, error)
	Count() (int64, error)
	TotalRevenue() (float64, error)
	MonthlySales(limit int) ([]MonthlySalesData, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(page, limit int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	if err := r.db.Model(&model.Sale{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Preload("Product").Preload("User").Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").
		Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepo) TotalRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}

// MonthlySales aggregates sales per calendar month, newest first.
func (r *saleRepo) MonthlySales(limit int) ([]MonthlySalesData, error) {
	var results []MonthlySalesData

	rows, err := r.db.Model(&model.Sale{}).
		Select(`TO_CHAR(created_at, 'YYYY-MM') as month, COALESCE(SUM(total), 0) as total, COUNT(*) as count`).
		Group("TO_CHAR(created_at, 'YYYY-MM')").
		Order("month DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MonthlySalesData
		if err := rows.Scan(&data.Month, &data.Total, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.Sale{}, "product_id = ?", productID).Error
}
