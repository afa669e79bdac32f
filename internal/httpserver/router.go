package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/middleware"
)

type Deps struct {
	Auth     *AuthHTTP
	Product  *ProductHTTP
	Category *CategoryHTTP
	Cart     *CartHTTP
	Order    *OrderHTTP
	Review   *ReviewHTTP
	User     *UserHTTP
	Admin    *AdminHTTP
	AuthMW   *middleware.AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", d.Auth.Register)
	authGroup.POST("/login", d.Auth.Login)
	authGroup.POST("/logout", d.Auth.Logout)

	products := api.Group("/products")
	products.GET("", d.Product.List)
	products.GET("/search", d.Product.Search)
	products.GET("/:id", d.Product.Get)
	products.POST("", d.Product.Create, d.AuthMW.RequireAdmin)
	products.PUT("/:id", d.Product.Update, d.AuthMW.RequireAdmin)
	products.DELETE("/:id", d.Product.Delete, d.AuthMW.RequireAdmin)

	categories := api.Group("/categories")
	categories.GET("", d.Category.List)
	categories.GET("/:id", d.Category.Get)
	categories.POST("", d.Category.Create, d.AuthMW.RequireAdmin)
	categories.PUT("/:id", d.Category.Update, d.AuthMW.RequireAdmin)
	categories.DELETE("/:id", d.Category.Delete, d.AuthMW.RequireAdmin)

	cart := api.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.Cart.List, d.AuthMW.RequireAdmin)
	cart.GET("/user", d.Cart.GetUserCart)
	cart.GET("/statistics", d.Cart.Statistics, d.AuthMW.RequireAdmin)
	cart.POST("", d.Cart.AddItem)
	cart.GET("/:id", d.Cart.Get)
	cart.PUT("/:id", d.Cart.UpdateItem)
	cart.DELETE("/:id/products/:productId", d.Cart.RemoveItem)
	// DELETE on the cart itself empties it; /clear is the explicit alias
	cart.DELETE("/:id", d.Cart.Clear)
	cart.DELETE("/:id/clear", d.Cart.Clear)

	orders := api.Group("/orders", d.AuthMW.RequireAuth)
	orders.POST("", d.Order.Create)
	orders.GET("", d.Order.List, d.AuthMW.RequireAdmin)
	orders.GET("/my-orders", d.Order.ListMine)
	orders.GET("/:id", d.Order.Get)
	orders.PATCH("/:id/status", d.Order.UpdateStatus, d.AuthMW.RequireAdmin)
	orders.PATCH("/:id/cancel", d.Order.Cancel)

	reviews := api.Group("/reviews")
	reviews.POST("", d.Review.Create, d.AuthMW.RequireAuth)
	reviews.GET("", d.Review.List, d.AuthMW.RequireAdmin)
	reviews.GET("/product/:productId", d.Review.ListForProduct, d.AuthMW.OptionalAuth)
	reviews.GET("/my-reviews", d.Review.ListMine, d.AuthMW.RequireAuth)
	reviews.PUT("/:id", d.Review.Update, d.AuthMW.RequireAuth)
	reviews.DELETE("/:id", d.Review.Delete, d.AuthMW.RequireAuth)
	reviews.PATCH("/:id/moderate", d.Review.Moderate, d.AuthMW.RequireAdmin)

	users := api.Group("/users", d.AuthMW.RequireAuth)
	users.GET("/profile", d.User.Profile)
	users.PUT("/profile", d.User.UpdateProfile)
	users.PUT("/change-password", d.User.ChangePassword)

	admin := api.Group("/admin", d.AuthMW.RequireAdmin)
	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.GET("/analytics", d.Admin.Analytics)
	admin.GET("/users", d.Admin.ListUsers)
	admin.PATCH("/users/:id/status", d.Admin.SetUserStatus)
}
