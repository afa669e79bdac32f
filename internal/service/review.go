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

type ReviewService struct {
	Repo *repo.GormRepo
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func validComment(c string) bool { return len(c) >= 1 && len(c) <= 500 }

func (s *ReviewService) Create(ctx context.Context, userID, productID uint, rating int, comment string) (*models.Review, error) {
	l := logging.FromContext(ctx).With("svc", "review.create", "user_id", userID, "product_id", productID)

	if !validRating(rating) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if !validComment(comment) {
		return nil, fmt.Errorf("%w: comment must be 1-500 characters", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.Repo.ReviewExists(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: you have already reviewed this product", ErrConflict)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	l.Info("review_created", "review_id", review.ID)
	return review, nil
}

// getOwn hides other users' reviews behind not-found, the way the
// lookup-by-(id,user) of the original behaves.
func (s *ReviewService) getOwn(ctx context.Context, actor auth.Actor, id uint) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review", ErrNotFound)
		}
		return nil, err
	}
	if review.UserID != actor.ID {
		return nil, fmt.Errorf("%w: review", ErrNotFound)
	}
	return review, nil
}

// Update applies a partial edit and always drops the review back to
// pending for re-moderation.
func (s *ReviewService) Update(ctx context.Context, actor auth.Actor, id uint, rating *int, comment *string) (*models.Review, error) {
	review, err := s.getOwn(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if rating != nil {
		if !validRating(*rating) {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
		review.Rating = *rating
	}
	if comment != nil {
		if !validComment(*comment) {
			return nil, fmt.Errorf("%w: comment must be 1-500 characters", ErrValidation)
		}
		review.Comment = *comment
	}
	review.Status = models.ReviewStatusPending

	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	review, err := s.getOwn(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.Repo.DeleteReview(ctx, review)
}

// Moderate sets any status from any status; there is no transition table
// for moderation.
func (s *ReviewService) Moderate(ctx context.Context, id uint, status string) (*models.Review, error) {
	l := logging.FromContext(ctx).With("svc", "review.moderate", "review_id", id)

	if !models.ValidReviewStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review", ErrNotFound)
		}
		return nil, err
	}

	review.Status = status
	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}

	l.Info("review_moderated", "status", status)
	return review, nil
}

// ListForProduct: approved reviews are public, admins see everything.
func (s *ReviewService) ListForProduct(ctx context.Context, actor auth.Actor, productID uint) ([]models.Review, error) {
	status := models.ReviewStatusApproved
	if actor.IsAdmin() {
		status = ""
	}
	return s.Repo.ListProductReviews(ctx, productID, status)
}

func (s *ReviewService) ListMine(ctx context.Context, userID uint) ([]models.Review, error) {
	return s.Repo.ListUserReviews(ctx, userID)
}

func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.Repo.ListReviews(ctx)
}
