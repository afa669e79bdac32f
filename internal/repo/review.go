package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/models"
)

// recomputeRatings refreshes the product aggregates from approved reviews.
// Runs inside whatever transaction mutated the review set.
func recomputeRatings(tx *gorm.DB, productID uint) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"ratings_count": gorm.Expr(
				"(SELECT COUNT(*) FROM reviews WHERE product_id = ? AND status = ?)",
				productID, models.ReviewStatusApproved),
			"ratings_average": gorm.Expr(
				"COALESCE((SELECT AVG(rating) FROM reviews WHERE product_id = ? AND status = ?), 0)",
				productID, models.ReviewStatusApproved),
		}).Error
}

func (r *GormRepo) ReviewExists(ctx context.Context, productID, userID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeRatings(tx, review.ProductID)
	})
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) SaveReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeRatings(tx, review.ProductID)
	})
}

func (r *GormRepo) DeleteReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, review.ID).Error; err != nil {
			return err
		}
		return recomputeRatings(tx, review.ProductID)
	})
}

func (r *GormRepo) ListProductReviews(ctx context.Context, productID uint, status string) ([]models.Review, error) {
	q := r.DB.WithContext(ctx).Where("product_id = ?", productID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reviews []models.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) ListUserReviews(ctx context.Context, userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
