package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/service"
)

type CategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	categories, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", categories)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	category, err := h.Svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", category)
}

type categoryCreateRequest struct {
	Name        string `json:"name"        validate:"required,min=2"`
	Description string `json:"description"`
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	var req categoryCreateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	category, err := h.Svc.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusCreated, "category created successfully", category)
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2"`
	Description *string `json:"description"`
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req categoryUpdateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	category, err := h.Svc.UpdateCategory(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "category updated successfully", category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return mapError(c, err)
	}
	return respondMessage(c, http.StatusOK, "category deleted successfully")
}
