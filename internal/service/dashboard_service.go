package service

import (
	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"gorm.io/gorm"
)

// CategoryCount is one slice of the category distribution chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DashboardStats aggregates the overview metrics in one payload.
type DashboardStats struct {
	TotalProducts    int64                         `json:"total_products"`
	TotalSuppliers   int64                         `json:"total_suppliers"`
	TotalSales       int64                         `json:"total_sales"`
	TotalRevenue     float64                       `json:"total_revenue"`
	StockValue       float64                       `json:"stock_value"`
	LowStockProducts []model.Product               `json:"low_stock_products"`
	RecentSales      []model.Sale                  `json:"recent_sales"`
	MonthlySales     []repository.MonthlySalesData `json:"monthly_sales"`
	Categories       []CategoryCount               `json:"categories"`
	SyncEnabledCount int64                         `json:"sync_enabled_count"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

type dashboardService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewDashboardService(db *gorm.DB, productRepo repository.ProductRepository, saleRepo repository.SaleRepository) DashboardService {
	return &dashboardService{
		db:          db,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Supplier{}).Count(&stats.TotalSuppliers).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.TotalSales, err = s.saleRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.saleRepo.TotalRevenue(); err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Product{}).
		Select("COALESCE(SUM(price * stock_qty), 0)").
		Scan(&stats.StockValue).Error; err != nil {
		return nil, err
	}

	if stats.LowStockProducts, err = s.productRepo.FindLowStock(10); err != nil {
		return nil, err
	}
	if stats.RecentSales, err = s.saleRepo.FindRecent(5); err != nil {
		return nil, err
	}
	if stats.MonthlySales, err = s.saleRepo.MonthlySales(12); err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Product{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&stats.Categories).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Product{}).
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Where("suppliers.api_base_url IS NOT NULL AND suppliers.api_base_url <> ''").
		Count(&stats.SyncEnabledCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
