package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/models"
)

func newOrderFixture(t *testing.T) (*OrderService, *CartService, *models.User, *models.Product, *models.Product) {
	t.Helper()
	r := newTestRepo(t)
	orders := &OrderService{Repo: r, Producer: events.Nop{}}
	carts := &CartService{Repo: r}
	user := seedUser(t, r, "alice@example.com", models.RoleUser)
	cat := seedCategory(t, r, "Books")
	p1 := seedProduct(t, r, cat.ID, "Novel", 10.00, 8)
	p2 := seedProduct(t, r, cat.ID, "Atlas", 5.00, 3)
	return orders, carts, user, p1, p2
}

func shipTo() models.ShippingAddress {
	return models.ShippingAddress{
		Street:  "1 Main Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "12345",
		Country: "US",
	}
}

func TestCreateOrderTotalsFromCatalog(t *testing.T) {
	orders, _, user, p1, p2 := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items: []OrderLine{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.InDelta(t, 25.00, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)

	stored, err := orders.Repo.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	require.Equal(t, 6, stored.Stock)
	require.Equal(t, 2, stored.SoldCount)
}

func TestCreateOrderFromCartClearsCart(t *testing.T) {
	orders, carts, user, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	cart, err := carts.AddItem(ctx, user.ID, p1.ID, 3)
	require.NoError(t, err)

	order, err := orders.Create(ctx, user.ID, CreateOrderInput{
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodPaypal,
	})
	require.NoError(t, err)
	require.InDelta(t, 30.00, order.TotalAmount, 0.001)

	cart, err = carts.GetUserCart(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items, "cart is emptied by order placement")
}

func TestCreateOrderValidation(t *testing.T) {
	orders, _, user, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	_, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingAddress: shipTo(),
		PaymentMethod:   "bitcoin",
	})
	require.ErrorIs(t, err, ErrValidation)

	// empty cart and no explicit items
	_, err = orders.Create(ctx, user.ID, CreateOrderInput{
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: 999, Quantity: 1}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	orders, _, user, _, p2 := newOrderFixture(t)
	ctx := context.Background()

	_, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p2.ID, Quantity: 4}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrConflict)

	// nothing was decremented by the failed attempt
	stored, err := orders.Repo.GetProduct(ctx, p2.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.Stock)
	require.Equal(t, 0, stored.SoldCount)
}

func TestCancelRestoresStock(t *testing.T) {
	orders, _, user, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 2}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	cancelled, err := orders.Cancel(ctx, asUser(user), order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	stored, err := orders.Repo.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	require.Equal(t, 8, stored.Stock)
	require.Equal(t, 0, stored.SoldCount)
}

func TestCancelOnlyPending(t *testing.T) {
	orders, _, user, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	_, err = orders.Cancel(ctx, asUser(user), order.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderOwnership(t *testing.T) {
	orders, _, alice, p1, _ := newOrderFixture(t)
	ctx := context.Background()
	bob := seedUser(t, orders.Repo, "bob@example.com", models.RoleUser)
	admin := seedUser(t, orders.Repo, "admin@example.com", models.RoleAdmin)

	order, err := orders.Create(ctx, alice.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, err = orders.Get(ctx, asUser(bob), order.ID)
	require.ErrorIs(t, err, ErrForbidden)

	got, err := orders.Get(ctx, asUser(admin), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	mine, err := orders.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := orders.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, theirs)
}

func TestUpdateStatusValidation(t *testing.T) {
	orders, _, user, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingAddress: shipTo(),
		PaymentMethod:   models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(ctx, order.ID, "lost")
	require.ErrorIs(t, err, ErrValidation)

	_, err = orders.UpdateStatus(ctx, 999, models.OrderStatusShipped)
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := orders.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusDelivered, updated.Status)
}
