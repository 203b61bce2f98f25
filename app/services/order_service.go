package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/apperrors"
	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/repositories"
)

// OrderNotifier receives a committed order for post-commit side effects. The
// service never looks at the outcome.
type OrderNotifier interface {
	Dispatch(order *models.Order)
}

// OrderService persists an order with its line items as one transaction,
// snapshotting unit prices inside that transaction, then hands the committed
// order to the notifier.
type OrderService struct {
	db         *gorm.DB
	orders     repositories.OrderRepository
	orderItems repositories.OrderItemRepository
	products   repositories.ProductRepositoryImpl
	inquiries  repositories.InquiryRepository
	notifier   OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	orders repositories.OrderRepository,
	orderItems repositories.OrderItemRepository,
	products repositories.ProductRepositoryImpl,
	inquiries repositories.InquiryRepository,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		db:         db,
		orders:     orders,
		orderItems: orderItems,
		products:   products,
		inquiries:  inquiries,
		notifier:   notifier,
	}
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	TotalAmount     decimal.Decimal  `json:"total_amount" validate:"required"`
	ShippingAddress string           `json:"shipping_address" validate:"required"`
	CustomerName    string           `json:"customer_name" validate:"required"`
	CustomerPhone   string           `json:"customer_phone" validate:"required"`
	CustomerEmail   string           `json:"customer_email" validate:"required,email"`
	UserID          *uint            `json:"user_id"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.Validation("order must contain at least one line item")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("quantity for product %d must be greater than zero", item.ProductID)
		}
		if item.ProductID == 0 {
			return nil, apperrors.InvalidReference("product id cannot be 0")
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.Store("failed to begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Unit prices are read inside the transaction so the snapshot cannot
	// race a price change between read and commit.
	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		product, err := s.products.GetByIDTx(ctx, tx, item.ProductID)
		if err != nil {
			tx.Rollback()
			return nil, apperrors.Store(fmt.Sprintf("failed to load product %d", item.ProductID), err)
		}
		if product == nil {
			tx.Rollback()
			return nil, apperrors.InvalidReference("product %d does not exist", item.ProductID)
		}

		unitPrice, priced := product.EffectivePrice()
		if !priced {
			tx.Rollback()
			return nil, apperrors.Validation("product %q has no price, contact for quote", product.Name)
		}

		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: unitPrice,
		})
	}

	total = total.Round(2)
	if !total.Equal(in.TotalAmount.Round(2)) {
		tx.Rollback()
		return nil, apperrors.Validation("total_amount mismatch: expected %s, got %s", total, in.TotalAmount)
	}

	order := &models.Order{
		Code:            newOrderCode(),
		UserID:          in.UserID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
	}
	if err := s.orders.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, apperrors.Store("failed to create order", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItems.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, apperrors.Store("failed to create order items", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Store("failed to commit order transaction", err)
	}
	order.Items = orderItems

	zlog.Info().
		Uint("order_id", order.ID).
		Str("order_code", order.Code).
		Str("total", order.TotalAmount.String()).
		Int("items", len(order.Items)).
		Msg("order committed")

	// Post-commit side effects; their outcome never alters the order.
	if s.notifier != nil {
		s.notifier.Dispatch(order)
	}
	return order, nil
}

func newOrderCode() string {
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

type CreateInquiryInput struct {
	ProductID     uint   `json:"product_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	Message       string `json:"message"`
}

func (s *OrderService) CreateInquiry(ctx context.Context, in CreateInquiryInput) (*models.ProductInquiry, error) {
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, apperrors.Store("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.InvalidReference("product %d does not exist", in.ProductID)
	}

	inquiry := &models.ProductInquiry{
		ProductID:     in.ProductID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Message:       in.Message,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, apperrors.Store("failed to create inquiry", err)
	}
	return inquiry, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load order", err)
	}
	if order == nil {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store("failed to list orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order along pending -> processing -> shipped ->
// delivered, with cancellation allowed from pending or processing.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown order status %q", status)
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store("failed to load order", err)
	}
	if order == nil {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperrors.Validation("order %d cannot move from %s to %s", id, order.Status, status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.Store("failed to update order status", err)
	}
	order.Status = status
	return order, nil
}
