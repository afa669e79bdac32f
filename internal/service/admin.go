package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

// AdminService is read-only rollups plus user management. All routes
// behind it are admin-gated by the router.
type AdminService struct {
	Repo *repo.GormRepo
}

func (s *AdminService) Dashboard(ctx context.Context) (*repo.DashboardStats, error) {
	return s.Repo.DashboardStats(ctx)
}

func (s *AdminService) Analytics(ctx context.Context) (*repo.Analytics, error) {
	return s.Repo.AnalyticsReport(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *AdminService) SetUserActive(ctx context.Context, id uint, active bool) (*models.User, error) {
	user, err := s.Repo.SetUserActive(ctx, id, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, err
}
