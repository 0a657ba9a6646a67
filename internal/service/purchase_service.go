package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateOrderInput is the payload for a new purchase order.
type CreateOrderInput struct {
	SupplierID uuid.UUID        `json:"supplier_id" validate:"uuid_required"`
	CreatedBy  uuid.UUID        `json:"-"`
	Notes      string           `json:"notes"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"required,gt=0"`
}

type PurchaseService interface {
	CreateOrder(input CreateOrderInput) (*model.PurchaseOrder, error)
	GetOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	ListOrders(page, limit int) ([]model.PurchaseOrder, int64, error)
	UpdateStatus(id uuid.UUID, status model.PurchaseOrderStatus) (*model.PurchaseOrder, error)
	DeleteOrder(id uuid.UUID) error
}

type purchaseService struct {
	db       *gorm.DB
	poRepo   repository.PurchaseOrderRepository
	stockSvc StockService
}

func NewPurchaseService(db *gorm.DB, poRepo repository.PurchaseOrderRepository, stockSvc StockService) PurchaseService {
	return &purchaseService{
		db:       db,
		poRepo:   poRepo,
		stockSvc: stockSvc,
	}
}

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber builds "PO-{base36 millis}-{4 random chars}".
func generateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return fmt.Sprintf("PO-%s-%s", timestamp, suffix)
}

func (s *purchaseService) CreateOrder(input CreateOrderInput) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(&input); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.Field, first.Tag)
	}

	var totalAmount float64
	items := make([]model.PurchaseOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		lineTotal := float64(item.Quantity) * item.UnitPrice
		totalAmount += lineTotal
		items = append(items, model.PurchaseOrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
	}

	order := &model.PurchaseOrder{
		OrderNumber: generateOrderNumber(),
		SupplierID:  input.SupplierID,
		CreatedByID: input.CreatedBy,
		Status:      model.POStatusPending,
		TotalAmount: totalAmount,
		Notes:       input.Notes,
		Items:       items,
	}

	if err := s.poRepo.Create(order); err != nil {
		return nil, err
	}
	return s.poRepo.FindByID(order.ID)
}

func (s *purchaseService) GetOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.poRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *purchaseService) ListOrders(page, limit int) ([]model.PurchaseOrder, int64, error) {
	return s.poRepo.FindAll(page, limit)
}

// UpdateStatus drives the forward-only state machine. The RECEIVED transition
// applies one IN movement per item atomically with the status change, and can
// only fire once per order since RECEIVED is terminal.
func (s *purchaseService) UpdateStatus(id uuid.UUID, status model.PurchaseOrderStatus) (*model.PurchaseOrder, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	err = s.stockSvc.Transact(func(tx *gorm.DB, stock StockTx) error {
		if status == model.POStatusReceived {
			reason := fmt.Sprintf("Purchase Order %s received", order.OrderNumber)
			for _, item := range order.Items {
				if _, err := stock.Apply(item.ProductID, item.Quantity, reason); err != nil {
					return err
				}
			}
		}
		return s.poRepo.UpdateStatus(tx, id, status)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("purchase order status changed")

	return s.poRepo.FindByID(id)
}

func (s *purchaseService) DeleteOrder(id uuid.UUID) error {
	if _, err := s.GetOrder(id); err != nil {
		return err
	}
	return s.poRepo.Delete(id)
}
