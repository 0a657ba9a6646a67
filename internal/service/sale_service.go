package service

import (
	"errors"
	"fmt"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(productID, userID uuid.UUID, quantity int, unitPrice float64) (*model.Sale, error)
	ListSales(page, limit int) ([]model.Sale, int64, error)
}

type saleService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	stockSvc    StockService
}

func NewSaleService(db *gorm.DB, productRepo repository.ProductRepository, saleRepo repository.SaleRepository, stockSvc StockService) SaleService {
	return &saleService{
		db:          db,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		stockSvc:    stockSvc,
	}
}

// CreateSale records a sale: the Sale row, the product stock decrement and
// the OUT stock log commit together or not at all.
func (s *saleService) CreateSale(productID, userID uuid.UUID, quantity int, unitPrice float64) (*model.Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, err
	}

	// Pre-check for a descriptive message; the ledger's guarded update is
	// what actually holds the invariant under concurrent sales.
	if product.StockQty < quantity {
		return nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, product.StockQty, quantity)
	}

	sale := &model.Sale{
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     float64(quantity) * unitPrice,
	}

	err = s.stockSvc.Transact(func(tx *gorm.DB, stock StockTx) error {
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}
		_, err := stock.Apply(productID, -quantity, "Product sold")
		return err
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *saleService) ListSales(page, limit int) ([]model.Sale, int64, error) {
	return s.saleRepo.FindAll(page, limit)
}
