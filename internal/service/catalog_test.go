package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/webstore/internal/events"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t), Producer: events.Nop{}}
}

func TestListProductsPagination(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	cat := seedCategory(t, svc.Repo, "Books")
	for i := 0; i < 10; i++ {
		seedProduct(t, svc.Repo, cat.ID, fmt.Sprintf("Book %02d", i), 10, 5)
	}

	products, page, err := svc.ListProducts(ctx, 1, 0, 0, "")
	require.NoError(t, err)
	require.Len(t, products, 6, "default page size")
	require.Equal(t, int64(10), page.TotalProducts)
	require.Equal(t, int64(2), page.TotalPages)

	products, page, err = svc.ListProducts(ctx, 2, 0, 0, "")
	require.NoError(t, err)
	require.Len(t, products, 4)
	require.Equal(t, 2, page.Page)
}

func TestListProductsFilters(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	books := seedCategory(t, svc.Repo, "Books")
	tools := seedCategory(t, svc.Repo, "Tools")
	seedProduct(t, svc.Repo, books.ID, "Hammer Time History", 10, 5)
	seedProduct(t, svc.Repo, tools.ID, "Claw Hammer", 25, 5)
	seedProduct(t, svc.Repo, tools.ID, "Screwdriver", 8, 5)

	products, _, err := svc.ListProducts(ctx, 1, 0, tools.ID, "")
	require.NoError(t, err)
	require.Len(t, products, 2)

	products, _, err = svc.ListProducts(ctx, 1, 0, 0, "hammer")
	require.NoError(t, err)
	require.Len(t, products, 2, "search is case-insensitive")

	products, _, err = svc.ListProducts(ctx, 1, 0, tools.ID, "hammer")
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestSearchProductsFallback(t *testing.T) {
	svc := newCatalogService(t) // Search is nil, database match is used
	ctx := context.Background()
	cat := seedCategory(t, svc.Repo, "Books")
	seedProduct(t, svc.Repo, cat.ID, "Go in Practice", 30, 5)
	seedProduct(t, svc.Repo, cat.ID, "Rust Basics", 28, 5)

	total, products, err := svc.SearchProducts(ctx, "go", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	require.Equal(t, "Go in Practice", products[0].Name)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	cat := seedCategory(t, svc.Repo, "Books")

	valid := ProductInput{
		Name:        "Novel",
		Description: "a description long enough",
		Price:       10,
		CategoryID:  cat.ID,
		Stock:       5,
	}

	in := valid
	in.Name = "x"
	_, err := svc.CreateProduct(ctx, in)
	require.ErrorIs(t, err, ErrValidation)

	in = valid
	in.Description = "short"
	_, err = svc.CreateProduct(ctx, in)
	require.ErrorIs(t, err, ErrValidation)

	in = valid
	in.Price = -1
	_, err = svc.CreateProduct(ctx, in)
	require.ErrorIs(t, err, ErrValidation)

	in = valid
	in.CategoryID = 999
	_, err = svc.CreateProduct(ctx, in)
	require.ErrorIs(t, err, ErrNotFound)

	product, err := svc.CreateProduct(ctx, valid)
	require.NoError(t, err)
	require.NotZero(t, product.ID)
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	cat := seedCategory(t, svc.Repo, "Books")
	product := seedProduct(t, svc.Repo, cat.ID, "Novel", 10, 5)

	price := 15.0
	updated, err := svc.UpdateProduct(ctx, product.ID, ProductUpdate{Price: &price})
	require.NoError(t, err)
	require.InDelta(t, 15.0, updated.Price, 0.001)
	require.Equal(t, "Novel", updated.Name, "untouched fields survive")

	_, err = svc.UpdateProduct(ctx, 999, ProductUpdate{Price: &price})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	cat := seedCategory(t, svc.Repo, "Books")
	product := seedProduct(t, svc.Repo, cat.ID, "Novel", 10, 5)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err := svc.GetProduct(ctx, product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, product.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Books", "printed matter")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Books", "again")
	require.ErrorIs(t, err, ErrConflict)

	name := "Paper Books"
	updated, err := svc.UpdateCategory(ctx, category.ID, &name, nil)
	require.NoError(t, err)
	require.Equal(t, "Paper Books", updated.Name)
	require.Equal(t, "printed matter", updated.Description)

	// renaming to your own current name is not a conflict
	_, err = svc.UpdateCategory(ctx, category.ID, &name, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
	_, err = svc.GetCategory(ctx, category.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
