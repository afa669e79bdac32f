package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
	"github.com/mkotelnikov/webstore/internal/search"
	"github.com/mkotelnikov/webstore/internal/util"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Search   *search.Client // nil disables full-text search
	Producer events.Producer
}

type Pagination struct {
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalProducts int64 `json:"totalProducts"`
	TotalPages    int64 `json:"totalPages"`
}

func (s *CatalogService) ListProducts(ctx context.Context, page, limit int, categoryID uint, searchText string) ([]models.Product, *Pagination, error) {
	offset, limit := util.Calculate(page, limit)
	if page < 1 {
		page = 1
	}

	total, products, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		CategoryID: categoryID,
		Search:     searchText,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, nil, err
	}

	return products, &Pagination{
		Page:          page,
		Limit:         limit,
		TotalProducts: total,
		TotalPages:    util.TotalPages(total, limit),
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	return product, err
}

// SearchProducts uses the full-text index when one is configured and the
// database substring match otherwise.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, page, size int) (int64, []models.Product, error) {
	from, size := util.Calculate(page, size)
	if s.Search != nil {
		return s.Search.Search(ctx, query, from, size)
	}
	total, products, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		Search: query,
		Offset: from,
		Limit:  size,
	})
	return total, products, err
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  uint
	Stock       int
	Image       string
}

func validateProductInput(in ProductInput) error {
	if len(in.Name) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if len(in.Description) < 10 {
		return fmt.Errorf("%w: description must be at least 10 characters", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		Image:       in.Image,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	s.publish(ctx, map[string]any{"type": "product_created", "product_id": product.ID, "name": product.Name})
	l.Info("product_created", "product_id", product.ID)
	return product, nil
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *uint
	Stock       *int
	Image       *string
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductUpdate) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product")

	fields := map[string]any{}
	if in.Name != nil {
		if len(*in.Name) < 2 {
			return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
		}
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		if len(*in.Description) < 10 {
			return nil, fmt.Errorf("%w: description must be at least 10 characters", ErrValidation)
		}
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		fields["price"] = *in.Price
	}
	if in.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category", ErrNotFound)
			}
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
		}
		fields["stock"] = *in.Stock
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}

	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	product, err := s.Repo.UpdateProductFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	s.publish(ctx, map[string]any{"type": "product_updated", "product_id": product.ID, "name": product.Name})
	l.Info("product_updated", "product_id", product.ID)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search_delete_failed", "product_id", id, "error", err)
		}
	}
	s.publish(ctx, map[string]any{"type": "product_deleted", "product_id": id})
	l.Info("product_deleted", "product_id", id)
	return nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: category", ErrNotFound)
	}
	return category, err
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	taken, err := s.Repo.CategoryNameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: category already exists", ErrConflict)
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name, description *string) (*models.Category, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if name != nil {
		if len(*name) < 2 {
			return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
		}
		taken, err := s.Repo.CategoryNameTaken(ctx, *name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: category already exists", ErrConflict)
		}
		fields["name"] = *name
	}
	if description != nil {
		fields["description"] = *description
	}
	return s.Repo.UpdateCategoryFields(ctx, id, fields)
}

// DeleteCategory does not guard against products still referencing the
// category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteCategory(ctx, id)
}
