package service

import (
	"errors"
	"sync"
	"testing"

	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplyMovementWritesLogAndQuantityTogether(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)
	product := createTestProduct(t, db, "SKU-001", 10, 5)

	qty, err := svc.ApplyMovement(product.ID, 5, "Restock")
	require.NoError(t, err)
	assert.Equal(t, 15, qty)

	qty, err = svc.ApplyMovement(product.ID, -3, "Product sold")
	require.NoError(t, err)
	assert.Equal(t, 12, qty)

	var logs []model.StockLog
	require.NoError(t, db.Where("product_id = ?", product.ID).Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, model.StockIn, logs[0].Type)
	assert.Equal(t, 5, logs[0].Quantity)
	assert.Equal(t, model.StockOut, logs[1].Type)
	assert.Equal(t, 3, logs[1].Quantity)
}

func TestApplyMovementRejectsNegativeStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)
	product := createTestProduct(t, db, "SKU-002", 4, 5)

	_, err := svc.ApplyMovement(product.ID, -5, "Product sold")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing changed and no log row leaked
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 4, reloaded.StockQty)

	var count int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyMovementZeroDeltaIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)
	product := createTestProduct(t, db, "SKU-003", 7, 5)

	qty, err := svc.ApplyMovement(product.ID, 0, "No change")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	var count int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyMovementUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)

	_, err := svc.ApplyMovement(uuid.New(), 5, "Restock")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentDecrementsNeverGoNegative(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)
	product := createTestProduct(t, db, "SKU-004", 5, 2)

	var wg sync.WaitGroup
	successes := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ApplyMovement(product.ID, -1, "Product sold"); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Equal(t, 5, len(successes))

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.StockQty)
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []interface{}
}

func (f *fakeBroadcaster) BroadcastEvent(payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, payload)
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestMovementEventPublishedAfterCommit(t *testing.T) {
	db := setupTestDB(t)
	hub := &fakeBroadcaster{}
	svc := NewStockService(db, repository.NewStockLogRepo(db), hub)
	product := createTestProduct(t, db, "SKU-010", 10, 5)

	_, err := svc.ApplyMovement(product.ID, 5, "Restock")
	require.NoError(t, err)

	require.Equal(t, 1, hub.count())
	event, ok := hub.events[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "stock_update", event["type"])
	payload, ok := event["product"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 15, payload["stock_qty"])
}

func TestRolledBackMovementPublishesNoEvent(t *testing.T) {
	db := setupTestDB(t)
	hub := &fakeBroadcaster{}
	svc := NewStockService(db, repository.NewStockLogRepo(db), hub)
	product := createTestProduct(t, db, "SKU-011", 10, 5)

	err := svc.Transact(func(tx *gorm.DB, stock StockTx) error {
		qty, err := stock.Apply(product.ID, 5, "Restock")
		require.NoError(t, err)
		require.Equal(t, 15, qty)
		return errors.New("later step failed")
	})
	require.Error(t, err)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 10, reloaded.StockQty)

	var logCount int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("product_id = ?", product.ID).Count(&logCount).Error)
	assert.Zero(t, logCount)

	assert.Zero(t, hub.count())
}

func TestReconcileMatchesLedgerReplay(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestStockService(db)
	product := createTestProduct(t, db, "SKU-005", 0, 5)

	movements := []int{10, -4, 7, -1, -2}
	for _, delta := range movements {
		_, err := svc.ApplyMovement(product.ID, delta, "movement")
		require.NoError(t, err)
	}

	qty, replayed, err := svc.Reconcile(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, qty)
	assert.Equal(t, qty, replayed)
}

func TestReplayQuantityCountsDirections(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewStockLogRepo(db)
	product := createTestProduct(t, db, "SKU-006", 0, 5)

	for _, entry := range []model.StockLog{
		{ProductID: product.ID, Type: model.StockIn, Quantity: 10},
		{ProductID: product.ID, Type: model.StockOut, Quantity: 4},
		{ProductID: product.ID, Type: model.StockAdjustment, Quantity: 2},
	} {
		e := entry
		require.NoError(t, repo.Create(db, &e))
	}

	sum, err := repo.ReplayQuantity(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, sum)
}
