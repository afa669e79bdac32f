package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetUserCart(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	cart, err := h.Svc.GetUserCart(c.Request().Context(), actor.ID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", cart)
}

type addToCartRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  uint `json:"quantity"  validate:"required,gte=1"`
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	var req addToCartRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	cart, err := h.Svc.AddItem(c.Request().Context(), actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "product added to cart successfully", cart)
}

func (h *CartHTTP) Get(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	cart, err := h.Svc.GetCart(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", cart)
}

func (h *CartHTTP) List(c echo.Context) error {
	carts, err := h.Svc.ListCarts(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", carts)
}

type updateCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  uint `json:"quantity"  validate:"required,gte=1"`
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req updateCartItemRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	cart, err := h.Svc.UpdateItem(c.Request().Context(), actor, id, req.ProductID, req.Quantity)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "cart item updated successfully", cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	productID, ok := paramUint(c, "productId")
	if !ok {
		return nil
	}

	cart, err := h.Svc.RemoveItem(c.Request().Context(), actor, id, productID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "product removed from cart successfully", cart)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}

	cart, err := h.Svc.Clear(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "cart cleared successfully", cart)
}

func (h *CartHTTP) Statistics(c echo.Context) error {
	stats, err := h.Svc.Statistics(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", stats)
}
