package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/models"
)

// PlaceOrder persists the order, adjusts stock and sold counters, and
// empties the cart in one transaction. The stock decrement is guarded by
// `stock >= quantity`, so an oversell aborts the whole order.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order, cartID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Updates(map[string]any{
					"stock":      gorm.Expr("stock - ?", item.Quantity),
					"sold_count": gorm.Expr("sold_count + ?", item.Quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}

// CancelOrder flips a pending order to cancelled and puts the reserved
// stock back. RowsAffected==0 on the status flip means the order was not
// pending anymore, the caller decides how to report that.
func (r *GormRepo) CancelOrder(ctx context.Context, order *models.Order) (bool, error) {
	cancelled := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		cancelled = true

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Updates(map[string]any{
					"stock":      gorm.Expr("stock + ?", item.Quantity),
					"sold_count": gorm.Expr("sold_count - ?", item.Quantity),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return cancelled, err
}
