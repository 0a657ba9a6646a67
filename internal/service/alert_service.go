package service

import (
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/mailer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertResult is the per-product delivery outcome of a low-stock scan.
type AlertResult struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// AlertService scans for products strictly under their minimum stock level
// and sends one notification per affected product. There is no suppression
// window: every invocation re-alerts on all currently-low products.
type AlertService interface {
	CheckAndAlert() ([]AlertResult, error)
}

type alertService struct {
	productRepo repository.ProductRepository
	mailer      mailer.Mailer
	wsHub       Broadcaster
}

func NewAlertService(productRepo repository.ProductRepository, m mailer.Mailer, hub Broadcaster) AlertService {
	return &alertService{
		productRepo: productRepo,
		mailer:      m,
		wsHub:       hub,
	}
}

func (s *alertService) CheckAndAlert() ([]AlertResult, error) {
	products, err := s.productRepo.FindLowStock(0)
	if err != nil {
		return nil, err
	}

	results := make([]AlertResult, 0, len(products))
	for _, product := range products {
		alert := mailer.LowStockAlert{
			ProductName:   product.Name,
			SKU:           product.SKU,
			CurrentStock:  product.StockQty,
			MinStockLevel: product.MinStockLevel,
			SupplierName:  "No supplier",
			SupplierEmail: "N/A",
		}
		if product.Supplier != nil {
			alert.SupplierName = product.Supplier.Name
			alert.SupplierEmail = product.Supplier.Email
		}

		result := AlertResult{ProductID: product.ID, SKU: product.SKU}
		if err := s.mailer.SendLowStockAlert(alert); err != nil {
			// Delivery failures are logged, not propagated; the scan goes on
			log.Error().Err(err).Str("sku", product.SKU).Msg("low stock alert delivery failed")
			result.Error = err.Error()
		} else {
			result.Success = true
		}
		results = append(results, result)

		if s.wsHub != nil {
			s.wsHub.BroadcastEvent(map[string]interface{}{
				"type":            "low_stock",
				"product_id":      product.ID,
				"sku":             product.SKU,
				"stock_qty":       product.StockQty,
				"min_stock_level": product.MinStockLevel,
			})
		}
	}

	return results, nil
}
