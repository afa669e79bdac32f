package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/service"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

type createReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment"   validate:"required,min=1,max=500"`
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createReviewRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	review, err := h.Svc.Create(c.Request().Context(), actor.ID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusCreated, "review created successfully", review)
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"  validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,min=1,max=500"`
}

func (h *ReviewHTTP) Update(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req updateReviewRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	review, err := h.Svc.Update(c.Request().Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "review updated successfully", review)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	if err := h.Svc.Delete(c.Request().Context(), actor, id); err != nil {
		return mapError(c, err)
	}
	return respondMessage(c, http.StatusOK, "review deleted successfully")
}

type moderateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (h *ReviewHTTP) Moderate(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req moderateReviewRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	review, err := h.Svc.Moderate(c.Request().Context(), id, req.Status)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "review moderated successfully", review)
}

// ListForProduct is public: anonymous callers get approved reviews only.
func (h *ReviewHTTP) ListForProduct(c echo.Context) error {
	productID, ok := paramUint(c, "productId")
	if !ok {
		return nil
	}
	actor, _ := middleware.ActorFrom(c)

	reviews, err := h.Svc.ListForProduct(c.Request().Context(), actor, productID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", reviews)
}

func (h *ReviewHTTP) ListMine(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	reviews, err := h.Svc.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", reviews)
}

func (h *ReviewHTTP) List(c echo.Context) error {
	reviews, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", reviews)
}
