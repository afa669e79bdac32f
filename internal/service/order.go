package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer events.Producer
}

type OrderLine struct {
	ProductID uint
	Quantity  uint
}

type CreateOrderInput struct {
	Items           []OrderLine
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
}

// Create snapshots the requested lines into an immutable order. Unit
// prices always come from the catalog, never from the client. When no
// items are supplied the user's cart is ordered. Order insert, stock
// decrement and cart clear share one transaction.
func (s *OrderService) Create(ctx context.Context, userID uint, in CreateOrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := in.Items
	if len(lines) == 0 {
		for _, item := range cart.Items {
			lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		ids = append(ids, line.ProductID)
	}
	products, err := s.Repo.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	priceByID := make(map[uint]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		price, ok := priceByID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
		})
		total += price * float64(line.Quantity)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
	}

	if err := s.Repo.PlaceOrder(ctx, order, cart.ID); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, err)
		}
		return nil, err
	}

	event := map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount,
	}
	if err := s.Producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("order_created", "order_id", order.ID, "total", order.TotalAmount)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	if !actor.CanAccess(order.UserID) {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) ListMine(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListUserOrders(ctx, userID)
}

// UpdateStatus is the admin override: any enumerated status, no
// transition table. Only the cancel path enforces the state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	order, err := s.Repo.SetOrderStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, err
}

func (s *OrderService) Cancel(ctx context.Context, actor auth.Actor, id uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.cancel", "order_id", id)

	order, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.Repo.CancelOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled", ErrInvalidTransition)
	}

	l.Info("order_cancelled", "user_id", order.UserID)
	return s.Repo.GetOrder(ctx, id)
}
