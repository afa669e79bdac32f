package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/hash"
	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
	"github.com/mkotelnikov/webstore/internal/service"
)

type testServer struct {
	echo   *echo.Echo
	repo   *repo.GormRepo
	tokens *auth.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	r := repo.New(db)
	tokens := auth.NewManager([]byte("test-secret"))
	producer := events.Nop{}

	deps := &Deps{
		Auth:     &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokens, Producer: producer}},
		Product:  &ProductHTTP{Svc: &service.CatalogService{Repo: r, Producer: producer}},
		Category: &CategoryHTTP{Svc: &service.CatalogService{Repo: r, Producer: producer}},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Order:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Producer: producer}},
		Review:   &ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		User:     &UserHTTP{Svc: &service.UserService{Repo: r}},
		Admin:    &AdminHTTP{Svc: &service.AdminService{Repo: r}},
		AuthMW:   middleware.NewAuthMiddleware(tokens),
	}

	e := echo.New()
	Register(e, deps)
	return &testServer{echo: e, repo: r, tokens: tokens}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	var envelope Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	}
	return rec, envelope
}

func (ts *testServer) seedAdmin(t *testing.T) string {
	t.Helper()
	pwHash, err := hash.HashPassword("password123")
	require.NoError(t, err)
	admin := &models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
		Phone:        "555-0100",
		Address:      "HQ",
		IsActive:     true,
	}
	require.NoError(t, ts.repo.DB.Create(admin).Error)
	token, _, err := ts.tokens.Issue(admin.ID, admin.Role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) seedCatalog(t *testing.T, products int) uint {
	t.Helper()
	category := &models.Category{Name: "Books", Description: "printed matter"}
	require.NoError(t, ts.repo.DB.Create(category).Error)
	for i := 0; i < products; i++ {
		p := &models.Product{
			Name:        fmt.Sprintf("Book %02d", i),
			Description: "a description long enough",
			Price:       10,
			CategoryID:  category.ID,
			Stock:       5,
		}
		require.NoError(t, ts.repo.DB.Create(p).Error)
	}
	return category.ID
}

func TestRegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	rec, envelope := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
		"phone":    "555-0101",
		"address":  "1 Main Street",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]any)
	require.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	require.Equal(t, "alice@example.com", user["email"])
	require.Equal(t, "user", user["role"])
	_, hasHash := user["password_hash"]
	require.False(t, hasHash, "password hash never leaves the server")

	var sawCookie bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			sawCookie = true
			require.True(t, cookie.HttpOnly)
		}
	}
	require.True(t, sawCookie)

	rec, envelope = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	rec, envelope = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, envelope.Success)
}

func TestRegisterValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	rec, envelope := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "A",
		"email":    "not-an-email",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, envelope.Success)
	require.NotEmpty(t, envelope.Errors)
}

func TestProductListPaginationEnvelope(t *testing.T) {
	ts := newTestServer(t)
	ts.seedCatalog(t, 10)

	rec, envelope := ts.request(t, http.MethodGet, "/api/v1/products?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]any)
	products := data["products"].([]any)
	require.Len(t, products, 4)

	pagination := data["pagination"].(map[string]any)
	require.EqualValues(t, 2, pagination["page"])
	require.EqualValues(t, 10, pagination["totalProducts"])
	require.EqualValues(t, 2, pagination["totalPages"])
}

func TestAdminRoutesAreGated(t *testing.T) {
	ts := newTestServer(t)

	rec, envelope := ts.request(t, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, envelope.Success)

	userToken, _, err := ts.tokens.Issue(7, models.RoleUser)
	require.NoError(t, err)
	rec, envelope = ts.request(t, http.MethodGet, "/api/v1/admin/dashboard", userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, envelope.Success)

	adminToken := ts.seedAdmin(t)
	rec, envelope = ts.request(t, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)
}

func TestProductCreateRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.seedCatalog(t, 0)
	adminToken := ts.seedAdmin(t)

	body := map[string]any{
		"name":        "Novel",
		"description": "a description long enough",
		"price":       12.5,
		"category_id": categoryID,
		"stock":       5,
	}

	rec, _ := ts.request(t, http.MethodPost, "/api/v1/products", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, envelope := ts.request(t, http.MethodPost, "/api/v1/products", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)

	created := envelope.Data.(map[string]any)
	require.Equal(t, "Novel", created["name"])
}

func TestOrderFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.seedCatalog(t, 2)

	_, envelope := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
		"phone":    "555-0101",
		"address":  "1 Main Street",
	})
	token := envelope.Data.(map[string]any)["token"].(string)

	rec, envelope := ts.request(t, http.MethodPost, "/api/v1/cart", token, map[string]any{
		"productId": 1,
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", envelope)

	rec, envelope = ts.request(t, http.MethodPost, "/api/v1/orders", token, map[string]any{
		"shippingAddress": map[string]any{
			"street":  "1 Main Street",
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "12345",
			"country": "US",
		},
		"paymentMethod": "COD",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", envelope)
	order := envelope.Data.(map[string]any)
	require.EqualValues(t, 20, order["total_amount"])
	require.Equal(t, "pending", order["status"])

	rec, envelope = ts.request(t, http.MethodGet, "/api/v1/orders/my-orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envelope.Data.([]any), 1)

	// the cart was consumed by the order
	rec, envelope = ts.request(t, http.MethodGet, "/api/v1/cart/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := envelope.Data.(map[string]any)
	require.Empty(t, cart["items"])
}

func TestCartDeleteEmptiesCart(t *testing.T) {
	ts := newTestServer(t)
	ts.seedCatalog(t, 1)

	_, envelope := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
		"phone":    "555-0101",
		"address":  "1 Main Street",
	})
	token := envelope.Data.(map[string]any)["token"].(string)

	rec, envelope := ts.request(t, http.MethodPost, "/api/v1/cart", token, map[string]any{
		"productId": 1,
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cartID := envelope.Data.(map[string]any)["id"].(float64)

	rec, envelope = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", int(cartID)), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)
	cart := envelope.Data.(map[string]any)
	require.Empty(t, cart["items"])
}
