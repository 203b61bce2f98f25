package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/apperrors"
	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/repositories"
	"github.com/mechstore/go-mechstore/app/services"
)

type recordingNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (n *recordingNotifier) Dispatch(order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
}

func (n *recordingNotifier) dispatched() []*models.Order {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*models.Order(nil), n.orders...)
}

func newOrderService(t *testing.T) (*services.OrderService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := services.NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewInquiryRepository(db),
		notifier,
	)
	return svc, db, notifier
}

func orderInput(total string, items ...services.OrderItemInput) services.CreateOrderInput {
	return services.CreateOrderInput{
		TotalAmount:     decimal.RequireFromString(total),
		ShippingAddress: "12 Workshop Lane",
		CustomerName:    "Dana Reyes",
		CustomerPhone:   "+1-555-0117",
		CustomerEmail:   "dana@example.com",
		Items:           items,
	}
}

func TestCreateOrderCommitsAndNotifies(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "4F End Mill", "4f-end-mill", cat.ID, brand.ID, dec("25.00"))

	order, err := svc.CreateOrder(ctx, orderInput("75.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 3},
	))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Code, "INV-"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("75.00")))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "4F End Mill", order.Items[0].ProductName)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("25.00")))

	var persisted models.Order
	require.NoError(t, db.Preload("Items").First(&persisted, "id = ?", order.ID).Error)
	assert.Len(t, persisted.Items, 1)

	dispatched := notifier.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, order.ID, dispatched[0].ID)
}

func TestCreateOrderSnapshotsSalePrice(t *testing.T) {
	svc, db, _ := newOrderService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))
	p.OnSale = true
	p.SalePrice = dec("30.00")
	require.NoError(t, db.Save(p).Error)

	order, err := svc.CreateOrder(context.Background(), orderInput("60.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 2},
	))
	require.NoError(t, err)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("30.00")))
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	// Client claims a stale total; the order must be refused, not repriced.
	_, err := svc.CreateOrder(context.Background(), orderInput("35.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 1},
	))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, notifier.dispatched())
}

func TestCreateOrderRejectsUnpricedProduct(t *testing.T) {
	svc, db, _ := newOrderService(t)
	cat := seedCategory(t, db, "Machines", "machines", nil)
	brand := seedBrand(t, db, "Mitutoyo")
	p := seedProduct(t, db, "CNC Lathe", "cnc-lathe", cat.ID, brand.ID, nil)

	_, err := svc.CreateOrder(context.Background(), orderInput("0.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 1},
	))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateOrderAtomicOnBadProduct(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	// Second line references a product that does not exist; nothing from the
	// first line may survive.
	_, err := svc.CreateOrder(context.Background(), orderInput("80.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 1},
		services.OrderItemInput{ProductID: 9999, Quantity: 1},
	))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
	assert.Empty(t, notifier.dispatched())
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.CreateOrder(context.Background(), orderInput("0.00"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc, db, _ := newOrderService(t)
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	_, err := svc.CreateOrder(context.Background(), orderInput("0.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 0},
	))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateInquiryRequiresExistingProduct(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.CreateInquiry(ctx, services.CreateInquiryInput{
		ProductID:     42,
		CustomerName:  "Dana Reyes",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+1-555-0117",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))

	cat := seedCategory(t, db, "Machines", "machines", nil)
	brand := seedBrand(t, db, "Mitutoyo")
	p := seedProduct(t, db, "CNC Lathe", "cnc-lathe", cat.ID, brand.ID, nil)

	inquiry, err := svc.CreateInquiry(ctx, services.CreateInquiryInput{
		ProductID:     p.ID,
		CustomerName:  "Dana Reyes",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+1-555-0117",
		Message:       "Lead time for 5 units?",
	})
	require.NoError(t, err)
	assert.NotZero(t, inquiry.ID)
}

func TestUpdateStatusFollowsTransitions(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	order, err := svc.CreateOrder(ctx, orderInput("40.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 1},
	))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	// Skipping straight to delivered is not a defined transition.
	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatus("returned"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.UpdateStatus(ctx, 404, models.OrderStatusProcessing)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetOrderPreloadsItems(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Cutting Tools", "cutting-tools", nil)
	brand := seedBrand(t, db, "Nachi")
	p := seedProduct(t, db, "Tap Set", "tap-set", cat.ID, brand.ID, dec("40.00"))

	created, err := svc.CreateOrder(ctx, orderInput("80.00",
		services.OrderItemInput{ProductID: p.ID, Quantity: 2},
	))
	require.NoError(t, err)

	loaded, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	_, err = svc.GetOrder(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
