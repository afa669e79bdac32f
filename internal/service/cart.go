package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetUserCart lazily creates an empty cart instead of reporting not found.
func (s *CartService) GetUserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity uint) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item", "user_id", userID)

	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddCartItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	l.Info("cart_item_added", "product_id", productID, "quantity", quantity)
	return s.Repo.GetCart(ctx, cart.ID)
}

func (s *CartService) getOwned(ctx context.Context, actor auth.Actor, cartID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, err
	}
	if !actor.CanAccess(cart.UserID) {
		return nil, fmt.Errorf("%w: not your cart", ErrForbidden)
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, actor auth.Actor, cartID uint) (*models.Cart, error) {
	return s.getOwned(ctx, actor, cartID)
}

// UpdateItem replaces the line quantity, it does not merge.
func (s *CartService) UpdateItem(ctx context.Context, actor auth.Actor, cartID, productID uint, quantity uint) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	cart, err := s.getOwned(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetCartItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		if errors.Is(err, repo.ErrLineNotFound) {
			return nil, fmt.Errorf("%w: product not found in cart", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.GetCart(ctx, cart.ID)
}

// RemoveItem is idempotent: removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, actor auth.Actor, cartID, productID uint) (*models.Cart, error) {
	cart, err := s.getOwned(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RemoveCartItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.Repo.GetCart(ctx, cart.ID)
}

func (s *CartService) Clear(ctx context.Context, actor auth.Actor, cartID uint) (*models.Cart, error) {
	cart, err := s.getOwned(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.Repo.GetCart(ctx, cart.ID)
}

func (s *CartService) ListCarts(ctx context.Context) ([]models.Cart, error) {
	return s.Repo.ListCarts(ctx)
}

func (s *CartService) Statistics(ctx context.Context) (*repo.CartStatistics, error) {
	return s.Repo.CartStatistics(ctx)
}
