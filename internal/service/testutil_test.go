package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/hash"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open in-memory db")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate tables")
	return repo.New(db)
}

func seedUser(t *testing.T, r *repo.GormRepo, email, role string) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		Phone:        "555-0101",
		Address:      "1 Test Street",
		IsActive:     true,
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, r *repo.GormRepo, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Description: "test category"}
	require.NoError(t, r.DB.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, r *repo.GormRepo, categoryID uint, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: fmt.Sprintf("description of %s", name),
		Price:       price,
		CategoryID:  categoryID,
		Stock:       stock,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func asUser(u *models.User) auth.Actor {
	return auth.Actor{ID: u.ID, Role: u.Role}
}
