package service

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/supplierapi"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SupplierClient is the external product-lookup collaborator.
type SupplierClient interface {
	FetchProduct(ctx context.Context, apiBaseURL, sku string) (*supplierapi.ProductData, error)
}

// SyncResult is the per-product outcome of a sync cycle. SupplierStock is
// informational only: quantity authority stays with the local ledger.
type SyncResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku"`
	Success       bool      `json:"success"`
	Message       string    `json:"message,omitempty"`
	OldPrice      float64   `json:"old_price,omitempty"`
	NewPrice      float64   `json:"new_price,omitempty"`
	SupplierStock int       `json:"supplier_stock,omitempty"`
	Currency      string    `json:"currency,omitempty"`
}

type SyncService interface {
	SyncProduct(ctx context.Context, productID uuid.UUID) (*SyncResult, error)
	SyncAll(ctx context.Context) ([]SyncResult, error)
}

type syncService struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	client        SupplierClient
	priceRecorder PriceRecorder
}

func NewSyncService(db *gorm.DB, productRepo repository.ProductRepository, client SupplierClient, priceRecorder PriceRecorder) SyncService {
	return &syncService{
		db:            db,
		productRepo:   productRepo,
		client:        client,
		priceRecorder: priceRecorder,
	}
}

// SyncProduct reconciles one product's cost price and currency with its
// supplier's reported values. Upstream failures surface as a soft result
// (Success=false), never as an error, so bulk callers keep going.
func (s *syncService) SyncProduct(ctx context.Context, productID uuid.UUID) (*SyncResult, error) {
	product, err := s.productRepo.FindByIDWithSupplier(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, err
	}

	if product.Supplier == nil || !product.Supplier.SyncEnabled() {
		return nil, fmt.Errorf("%w: product %s", ErrNotConfigured, product.SKU)
	}

	result := &SyncResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		SKU:         product.SKU,
	}

	data, err := s.client.FetchProduct(ctx, *product.Supplier.APIBaseURL, product.SKU)
	if err != nil {
		log.Warn().Err(err).Str("sku", product.SKU).Msg("supplier sync failed")
		result.Message = fmt.Sprintf("failed to fetch supplier data: %v", err)
		return result, nil
	}

	oldPrice := product.CostPrice

	// Sync updates price and currency only, never stock quantity: the
	// supplier-reported stock is untrusted and would break the ledger.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"cost_price": data.Price,
			"currency":   data.Currency,
		}
		if err := s.productRepo.UpdateFields(tx, productID, fields); err != nil {
			return err
		}
		return s.priceRecorder.RecordIfChanged(tx, productID, oldPrice, data.Price, model.PriceSourceSupplierSync)
	})
	if err != nil {
		return nil, err
	}

	result.Success = true
	result.OldPrice = oldPrice
	result.NewPrice = data.Price
	result.SupplierStock = data.Stock
	result.Currency = data.Currency

	log.Info().
		Str("sku", product.SKU).
		Float64("old_price", oldPrice).
		Float64("new_price", data.Price).
		Msg("product synced from supplier")

	return result, nil
}

// SyncAll syncs every product whose supplier has an API endpoint. Products
// are processed sequentially in a stable order and one outcome is returned
// per product; a failure on one never blocks or rolls back the others.
func (s *syncService) SyncAll(ctx context.Context) ([]SyncResult, error) {
	products, err := s.productRepo.FindSyncEligible()
	if err != nil {
		return nil, err
	}

	results := make([]SyncResult, 0, len(products))
	for _, product := range products {
		result, err := s.SyncProduct(ctx, product.ID)
		if err != nil {
			// NotFound/NotConfigured can only happen if the product changed
			// between enumeration and sync; record it and continue.
			results = append(results, SyncResult{
				ProductID:   product.ID,
				ProductName: product.Name,
				SKU:         product.SKU,
				Message:     err.Error(),
			})
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}
