package service

import (
	"fmt"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Broadcaster pushes events to connected websocket clients.
type Broadcaster interface {
	BroadcastEvent(payload interface{})
}

// StockService is the sole owner of the invariant "current stock quantity
// equals the net effect of all recorded movements". Every quantity change
// goes through a StockTx, which pairs the product update with a StockLog
// entry in the same transaction.
type StockService interface {
	ApplyMovement(productID uuid.UUID, delta int, reason string) (int, error)
	Transact(fn func(tx *gorm.DB, stock StockTx) error) error
	Reconcile(productID uuid.UUID) (stockQty int, replayed int, err error)
}

// StockTx applies movements inside a transaction opened by Transact.
// Movement events are held back until that transaction commits; a rollback
// publishes nothing.
type StockTx interface {
	Apply(productID uuid.UUID, delta int, reason string) (int, error)
}

type stockService struct {
	db           *gorm.DB
	stockLogRepo repository.StockLogRepository
	wsHub        Broadcaster
}

func NewStockService(db *gorm.DB, stockLogRepo repository.StockLogRepository, hub Broadcaster) StockService {
	return &stockService{
		db:           db,
		stockLogRepo: stockLogRepo,
		wsHub:        hub,
	}
}

type stockEvent struct {
	product model.Product
	entry   model.StockLog
}

type stockTx struct {
	svc     *stockService
	tx      *gorm.DB
	pending []stockEvent
}

// Transact runs fn in one database transaction and publishes the events for
// movements applied through the StockTx only after the transaction commits.
func (s *stockService) Transact(fn func(tx *gorm.DB, stock StockTx) error) error {
	st := &stockTx{svc: s}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st.tx = tx
		return fn(tx, st)
	})
	if err != nil {
		return err
	}
	for i := range st.pending {
		s.broadcastMovement(&st.pending[i])
	}
	return nil
}

// ApplyMovement runs a single movement in its own transaction.
func (s *stockService) ApplyMovement(productID uuid.UUID, delta int, reason string) (int, error) {
	var committed int
	err := s.Transact(func(_ *gorm.DB, stock StockTx) error {
		qty, err := stock.Apply(productID, delta, reason)
		if err != nil {
			return err
		}
		committed = qty
		return nil
	})
	return committed, err
}

func (st *stockTx) Apply(productID uuid.UUID, delta int, reason string) (int, error) {
	qty, event, err := st.svc.applyMovement(st.tx, productID, delta, reason)
	if err != nil {
		return 0, err
	}
	if event != nil {
		st.pending = append(st.pending, *event)
	}
	return qty, nil
}

// applyMovement applies a signed stock delta inside the given transaction.
// The quantity update is a single conditional statement guarded by
// `stock_qty + delta >= 0`, so the non-negative invariant holds under
// concurrent access at any isolation level.
func (s *stockService) applyMovement(tx *gorm.DB, productID uuid.UUID, delta int, reason string) (int, *stockEvent, error) {
	if delta == 0 {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return 0, nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return product.StockQty, nil, nil
	}

	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_qty + ? >= 0", productID, delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if res.Error != nil {
		return 0, nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the product is missing or the guard rejected the decrement
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return 0, nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return 0, nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, product.StockQty, -delta)
	}

	var product model.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		return 0, nil, err
	}

	logType := model.StockIn
	quantity := delta
	if delta < 0 {
		logType = model.StockOut
		quantity = -delta
	}

	entry := &model.StockLog{
		ProductID: productID,
		Type:      logType,
		Quantity:  quantity,
		Reason:    reason,
	}
	if err := s.stockLogRepo.Create(tx, entry); err != nil {
		return 0, nil, err
	}

	return product.StockQty, &stockEvent{product: product, entry: *entry}, nil
}

// Reconcile replays the stock log from zero and returns the product's
// current quantity next to the replayed sum. The two must match.
func (s *stockService) Reconcile(productID uuid.UUID) (int, int, error) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		return 0, 0, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	replayed, err := s.stockLogRepo.ReplayQuantity(productID)
	if err != nil {
		return 0, 0, err
	}

	if product.StockQty != replayed {
		log.Error().
			Str("product_id", productID.String()).
			Int("stock_qty", product.StockQty).
			Int("replayed", replayed).
			Msg("stock ledger out of balance")
	}

	return product.StockQty, replayed, nil
}

func (s *stockService) broadcastMovement(ev *stockEvent) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastEvent(map[string]interface{}{
		"type": "stock_update",
		"product": map[string]interface{}{
			"id":        ev.product.ID,
			"sku":       ev.product.SKU,
			"name":      ev.product.Name,
			"stock_qty": ev.product.StockQty,
		},
		"movement": map[string]interface{}{
			"type":     ev.entry.Type,
			"quantity": ev.entry.Quantity,
			"reason":   ev.entry.Reason,
		},
	})
}
