package service

import (
	"errors"
	"fmt"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDetail is a product with its most recent audit records.
type ProductDetail struct {
	model.Product
	RecentPriceHistory []model.PriceHistory `json:"recent_price_history"`
	RecentStockLogs    []model.StockLog     `json:"recent_stock_logs"`
}

type ProductService interface {
	CreateProduct(product *model.Product) error
	GetProduct(id uuid.UUID) (*ProductDetail, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

type productService struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	stockLogRepo     repository.StockLogRepository
	priceHistoryRepo repository.PriceHistoryRepository
	saleRepo         repository.SaleRepository
	poRepo           repository.PurchaseOrderRepository
	stockSvc         StockService
	priceRecorder    PriceRecorder
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	stockLogRepo repository.StockLogRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	saleRepo repository.SaleRepository,
	poRepo repository.PurchaseOrderRepository,
	stockSvc StockService,
	priceRecorder PriceRecorder,
) ProductService {
	return &productService{
		db:               db,
		productRepo:      productRepo,
		stockLogRepo:     stockLogRepo,
		priceHistoryRepo: priceHistoryRepo,
		saleRepo:         saleRepo,
		poRepo:           poRepo,
		stockSvc:         stockSvc,
		priceRecorder:    priceRecorder,
	}
}

func (s *productService) CreateProduct(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.Field, first.Tag)
	}

	existing, err := s.productRepo.FindBySKU(product.SKU)
	if err == nil && existing.ID != uuid.Nil {
		return ErrDuplicateSKU
	}

	if product.Currency == "" {
		product.Currency = "USD"
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}

		// Seed the ledger so replay from zero reconciles
		if product.StockQty > 0 {
			return s.stockLogRepo.Create(tx, &model.StockLog{
				ProductID: product.ID,
				Type:      model.StockIn,
				Quantity:  product.StockQty,
				Reason:    "Initial stock on product creation",
			})
		}
		return nil
	})
}

func (s *productService) GetProduct(id uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByIDWithSupplier(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	history, err := s.priceHistoryRepo.FindByProduct(id, 20)
	if err != nil {
		return nil, err
	}
	logs, err := s.stockLogRepo.FindByProduct(id, 20)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:            *product,
		RecentPriceHistory: history,
		RecentStockLogs:    logs,
	}, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter)
}

// UpdateProduct applies a manual edit. Cost price changes produce a MANUAL
// price history record; stock changes go through the ledger so the quantity
// and its log entry commit together.
func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.Field, first.Tag)
	}

	var updated *model.Product
	err := s.stockSvc.Transact(func(tx *gorm.DB, stock StockTx) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, id)
			}
			return err
		}

		if err := s.priceRecorder.RecordIfChanged(tx, id, existing.CostPrice, req.CostPrice, model.PriceSourceManual); err != nil {
			return err
		}

		if diff := req.StockQty - existing.StockQty; diff != 0 {
			if _, err := stock.Apply(id, diff, "Manual stock adjustment"); err != nil {
				return err
			}
		}

		fields := map[string]interface{}{
			"name":            req.Name,
			"sku":             req.SKU,
			"barcode":         req.Barcode,
			"category":        req.Category,
			"price":           req.Price,
			"cost_price":      req.CostPrice,
			"min_stock_level": req.MinStockLevel,
			"currency":        req.Currency,
			"supplier_id":     req.SupplierID,
		}
		if err := s.productRepo.UpdateFields(tx, id, fields); err != nil {
			return err
		}

		var result model.Product
		if err := tx.Preload("Supplier").First(&result, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product and its dependents in dependency order:
// price history, stock logs, sales, purchase order items, then the product.
func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.priceHistoryRepo.DeleteByProduct(tx, id); err != nil {
			return err
		}
		if err := s.stockLogRepo.DeleteByProduct(tx, id); err != nil {
			return err
		}
		if err := s.saleRepo.DeleteByProduct(tx, id); err != nil {
			return err
		}
		if err := s.poRepo.DeleteItemsByProduct(tx, id); err != nil {
			return err
		}
		return s.productRepo.Delete(tx, id)
	})
}
