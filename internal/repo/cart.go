package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/models"
)

func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items").First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) ListCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items").Order("id ASC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// AddCartItem merges on add. The increment is a single UPDATE, so two
// concurrent adds for the same line both land instead of one overwriting
// the other.
func (r *GormRepo) AddCartItem(ctx context.Context, cartID, productID uint, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	})
}

// SetCartItemQuantity replaces the quantity of an existing line; it never
// creates one.
func (r *GormRepo) SetCartItemQuantity(ctx context.Context, cartID, productID uint, quantity uint) error {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, cartID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

type CartStatistics struct {
	TotalCarts      int64   `json:"total_carts"`
	AverageProducts float64 `json:"average_products"`
}

func (r *GormRepo) CartStatistics(ctx context.Context) (*CartStatistics, error) {
	var stats CartStatistics
	if err := r.DB.WithContext(ctx).Model(&models.Cart{}).Count(&stats.TotalCarts).Error; err != nil {
		return nil, err
	}
	if stats.TotalCarts == 0 {
		return &stats, nil
	}

	var totalLines int64
	if err := r.DB.WithContext(ctx).Model(&models.CartItem{}).Count(&totalLines).Error; err != nil {
		return nil, err
	}
	stats.AverageProducts = float64(totalLines) / float64(stats.TotalCarts)
	return &stats, nil
}
