package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

type orderLineRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  uint `json:"quantity"  validate:"required,gte=1"`
}

type shippingAddressRequest struct {
	Street  string `json:"street"  validate:"required"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type createOrderRequest struct {
	Items           []orderLineRequest     `json:"items" validate:"omitempty,dive"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,oneof=COD paypal credit_card"`
}

func (h *OrderHTTP) Create(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createOrderRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	in := service.CreateOrderInput{
		ShippingAddress: models.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Country: req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.Svc.Create(c.Request().Context(), actor.ID, in)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusCreated, "order created successfully", order)
}

func (h *OrderHTTP) List(c echo.Context) error {
	orders, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", orders)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	orders, err := h.Svc.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", orders)
}

func (h *OrderHTTP) Get(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	order, err := h.Svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req updateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	order, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "order status updated", order)
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}

	order, err := h.Svc.Cancel(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "order cancelled successfully", order)
}
