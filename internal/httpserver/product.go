package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/service"
	"github.com/mkotelnikov/webstore/internal/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

type productListPayload struct {
	Products   any `json:"products"`
	Pagination any `json:"pagination"`
}

func (h *ProductHTTP) List(c echo.Context) error {
	page := queryIntDefault(c, "page", 1)
	limit := queryIntDefault(c, "limit", util.DefaultPageSize)

	var categoryID uint
	if s := c.QueryParam("category"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid category")
		}
		categoryID = uint(v)
	}

	products, pagination, err := h.Svc.ListProducts(c.Request().Context(), page, limit, categoryID, c.QueryParam("search"))
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", productListPayload{
		Products:   products,
		Pagination: pagination,
	})
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", product)
}

func (h *ProductHTTP) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return respondError(c, http.StatusBadRequest, "query parameter required")
	}
	page := queryIntDefault(c, "page", 1)
	size := queryIntDefault(c, "size", util.DefaultPageSize)

	total, products, err := h.Svc.SearchProducts(c.Request().Context(), query, page, size)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", map[string]any{
		"total":    total,
		"products": products,
	})
}

type productCreateRequest struct {
	Name        string  `json:"name"        validate:"required,min=2"`
	Description string  `json:"description" validate:"required,min=10"`
	Price       float64 `json:"price"       validate:"gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	Image       string  `json:"image"`
}

func (h *ProductHTTP) Create(c echo.Context) error {
	var req productCreateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusCreated, "product created successfully", product)
}

type productUpdateRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=2"`
	Description *string  `json:"description" validate:"omitempty,min=10"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	CategoryID  *uint    `json:"category_id"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

func (h *ProductHTTP) Update(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req productUpdateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "product updated successfully", product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return mapError(c, err)
	}
	return respondMessage(c, http.StatusOK, "product deleted successfully")
}
